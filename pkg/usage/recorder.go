package usage

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/triage/internal/logging"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/ports"
)

// DefaultQueueSize is the number of records buffered before new ones are dropped.
const DefaultQueueSize = 256

// DefaultWriteTimeout bounds a single sink write.
const DefaultWriteTimeout = 5 * time.Second

// AsyncRecorder implements ports.UsageRecorder on top of a synchronous sink.
type AsyncRecorder struct {
	sink         ports.UsageSink
	logger       *slog.Logger
	newID        func() string
	queueSize    int
	writeTimeout time.Duration

	queue   chan domain.UsageRecord
	done    chan struct{}
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
	written atomic.Int64
}

// Option configures an AsyncRecorder.
type Option func(*AsyncRecorder)

// WithQueueSize sets the queue capacity.
func WithQueueSize(n int) Option {
	return func(r *AsyncRecorder) {
		if n > 0 {
			r.queueSize = n
		}
	}
}

// WithLogger sets the logger used for sink failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *AsyncRecorder) {
		r.logger = logger
	}
}

// WithIDGenerator replaces the uuid based record id generator.
func WithIDGenerator(fn func() string) Option {
	return func(r *AsyncRecorder) {
		r.newID = fn
	}
}

// WithWriteTimeout bounds each sink write.
func WithWriteTimeout(d time.Duration) Option {
	return func(r *AsyncRecorder) {
		if d > 0 {
			r.writeTimeout = d
		}
	}
}

// NewAsyncRecorder starts the worker. Call Close to stop it.
func NewAsyncRecorder(sink ports.UsageSink, opts ...Option) *AsyncRecorder {
	r := &AsyncRecorder{
		sink:         sink,
		logger:       logging.NewNop(),
		newID:        uuid.NewString,
		queueSize:    DefaultQueueSize,
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.queue = make(chan domain.UsageRecord, r.queueSize)
	r.done = make(chan struct{})
	go r.run()
	return r
}

// Record enqueues the record without blocking. Records arriving after Close or
// while the queue is full are dropped.
func (r *AsyncRecorder) Record(_ context.Context, rec domain.UsageRecord) {
	if rec.ID == "" {
		rec.ID = r.newID()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.dropped.Add(1)
		return
	}
	select {
	case r.queue <- rec:
	default:
		r.dropped.Add(1)
	}
}

// Dropped returns the number of records dropped so far.
func (r *AsyncRecorder) Dropped() int64 {
	return r.dropped.Load()
}

// Written returns the number of records the sink accepted.
func (r *AsyncRecorder) Written() int64 {
	return r.written.Load()
}

// Close stops accepting records and waits for the queue to drain or ctx to end.
func (r *AsyncRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *AsyncRecorder) run() {
	defer close(r.done)
	for rec := range r.queue {
		r.write(rec)
	}
}

func (r *AsyncRecorder) write(rec domain.UsageRecord) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("usage sink panicked", "panic", p)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()
	if err := r.sink.Write(ctx, rec); err != nil {
		r.logger.Warn("usage sink write failed", "domain", rec.Domain, "error", err)
		return
	}
	r.written.Add(1)
}
