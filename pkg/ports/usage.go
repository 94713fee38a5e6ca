package ports

import (
	"context"

	"github.com/aretw0/triage/pkg/domain"
)

// UsageRecorder accepts usage records. Implementations must not block the caller
// for long and must never fail the request path; Record has no return value on purpose.
type UsageRecorder interface {
	Record(ctx context.Context, rec domain.UsageRecord)
}

// UsageSink is a synchronous destination for usage records, driven by an async recorder.
type UsageSink interface {
	Write(ctx context.Context, rec domain.UsageRecord) error
}

// NopRecorder discards every record.
type NopRecorder struct{}

// Record implements UsageRecorder.
func (NopRecorder) Record(context.Context, domain.UsageRecord) {}
