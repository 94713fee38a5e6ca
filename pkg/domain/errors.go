package domain

import "errors"

// ErrLookupUnavailable is returned by knowledge stores when the backend cannot be reached
// or the query timed out. Handlers treat it as an empty result.
var ErrLookupUnavailable = errors.New("knowledge lookup unavailable")

// ErrNoMatch signals that neither a curated entry nor a specialist branch fired.
var ErrNoMatch = errors.New("no match")

// ErrHandlerFault wraps unexpected failures inside a domain handler or specialist.
var ErrHandlerFault = errors.New("handler fault")

// ErrEmptyQuestion is reported when the question is blank after sanitization.
var ErrEmptyQuestion = errors.New("empty question")

// ErrEntryNotFound is returned by stores when an entry ID is unknown.
var ErrEntryNotFound = errors.New("knowledge entry not found")

// ErrInvalidEntry is returned when a knowledge entry fails validation.
var ErrInvalidEntry = errors.New("invalid knowledge entry")
