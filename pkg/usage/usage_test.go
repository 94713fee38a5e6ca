package usage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/triage/pkg/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type memorySink struct {
	mu      sync.Mutex
	records []domain.UsageRecord
	gate    chan struct{}
	err     error
}

func (s *memorySink) Write(_ context.Context, rec domain.UsageRecord) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return s.err
}

func (s *memorySink) all() []domain.UsageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.UsageRecord(nil), s.records...)
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "What is GMLP?", Prefix("  What is GMLP?  "))
	assert.Equal(t, "Contact *** about record ***", Prefix("Contact jane.doe@example.com about record 12345678"))
	assert.Equal(t, "What is a 510(k) in 2024?", Prefix("What is a 510(k) in 2024?"))

	long := strings.Repeat("é", 100)
	assert.Equal(t, PrefixRunes, len([]rune(Prefix(long))))
}

func TestPrefix_MasksValueCutByLimit(t *testing.T) {
	q := strings.Repeat("a ", 27) + "reach me at someone@example.org"
	got := Prefix(q)
	assert.NotContains(t, got, "someone")
	assert.LessOrEqual(t, len([]rune(got)), PrefixRunes)
}

func TestAsyncRecorder_DrainsOnClose(t *testing.T) {
	sink := &memorySink{}
	n := 0
	rec := NewAsyncRecorder(sink, WithIDGenerator(func() string {
		n++
		return "id-" + string(rune('0'+n))
	}))

	for i := 0; i < 5; i++ {
		rec.Record(context.Background(), domain.UsageRecord{Domain: domain.DomainGeneral})
	}
	require.NoError(t, rec.Close(context.Background()))

	got := sink.all()
	require.Len(t, got, 5)
	assert.Equal(t, "id-1", got[0].ID)
	assert.Equal(t, int64(5), rec.Written())
	assert.Zero(t, rec.Dropped())
}

func TestAsyncRecorder_DefaultIDIsUUID(t *testing.T) {
	sink := &memorySink{}
	rec := NewAsyncRecorder(sink)
	rec.Record(context.Background(), domain.UsageRecord{Domain: domain.DomainAnalytics})
	require.NoError(t, rec.Close(context.Background()))

	got := sink.all()
	require.Len(t, got, 1)
	assert.Len(t, got[0].ID, 36)
}

func TestAsyncRecorder_DropsWhenFull(t *testing.T) {
	sink := &memorySink{gate: make(chan struct{})}
	rec := NewAsyncRecorder(sink, WithQueueSize(1))

	start := time.Now()
	for i := 0; i < 10; i++ {
		rec.Record(context.Background(), domain.UsageRecord{Domain: domain.DomainGeneral})
	}
	assert.Less(t, time.Since(start), time.Second)
	assert.GreaterOrEqual(t, rec.Dropped(), int64(8))

	close(sink.gate)
	require.NoError(t, rec.Close(context.Background()))
	assert.Equal(t, int64(10), rec.Dropped()+rec.Written())
}

func TestAsyncRecorder_RecordAfterClose(t *testing.T) {
	rec := NewAsyncRecorder(&memorySink{})
	require.NoError(t, rec.Close(context.Background()))
	require.NoError(t, rec.Close(context.Background()))

	rec.Record(context.Background(), domain.UsageRecord{})
	assert.Equal(t, int64(1), rec.Dropped())
}

func TestAsyncRecorder_SinkErrorIsNotFatal(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	rec := NewAsyncRecorder(sink)
	rec.Record(context.Background(), domain.UsageRecord{})
	rec.Record(context.Background(), domain.UsageRecord{})
	require.NoError(t, rec.Close(context.Background()))

	assert.Len(t, sink.all(), 2)
	assert.Zero(t, rec.Written())
}

func TestAsyncRecorder_CloseHonorsContext(t *testing.T) {
	sink := &memorySink{gate: make(chan struct{})}
	rec := NewAsyncRecorder(sink)
	rec.Record(context.Background(), domain.UsageRecord{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rec.Close(ctx), context.DeadlineExceeded)

	close(sink.gate)
	require.NoError(t, rec.Close(context.Background()))
}

func TestMultiSink(t *testing.T) {
	a, b := &memorySink{}, &memorySink{err: errors.New("boom")}
	err := MultiSink{a, b}.Write(context.Background(), domain.UsageRecord{Domain: "general"})
	assert.Error(t, err)
	assert.Len(t, a.all(), 1)
	assert.Len(t, b.all(), 1)
}

func TestPrometheusSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPrometheusSink(reg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.Write(ctx, domain.UsageRecord{Domain: "regulatory", Specialist: "fda", Elapsed: 3 * time.Millisecond}))
	require.NoError(t, sink.Write(ctx, domain.UsageRecord{Domain: "regulatory", Specialist: "fda"}))
	require.NoError(t, sink.Write(ctx, domain.UsageRecord{Domain: "general", Fallback: true}))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.questions.WithLabelValues("regulatory", "fda")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.fallbacks.WithLabelValues("general")))

	_, err = NewPrometheusSink(reg)
	assert.Error(t, err, "registering twice must fail")
}
