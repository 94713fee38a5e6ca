// Package usage records which domain answered each question.
//
// Records flow from the router into an AsyncRecorder, which queues them and
// hands them to a UsageSink on a single worker goroutine. Recording never
// blocks the request path: when the queue is full the record is dropped and
// counted.
package usage
