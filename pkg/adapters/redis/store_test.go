package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/triage/pkg/adapters/redis"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/ports"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *backend.Client, *redis.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := redis.NewFromClient(client, opts...)
	require.NoError(t, store.Put(context.Background(), ports.ContractEntries()...))
	return mr, client, store
}

func TestRedisStore_Contract(t *testing.T) {
	_, _, store := setup(t)
	ports.RunKnowledgeStoreContract(t, store)
}

func TestRedisStore_ContractWithLocker(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewFromClient(client,
		redis.WithPrefix("test:"),
		redis.WithLocker(redis.NewLocker(client, "test:")),
	)
	require.NoError(t, store.Put(context.Background(), ports.ContractEntries()...))
	ports.RunKnowledgeStoreContract(t, store)

	assert.True(t, mr.Exists("test:entry:reg-510k"))
	assert.False(t, mr.Exists("test:lock:knowledge"), "lock must be released after Put")
}

func TestRedisStore_PutReplacesIndex(t *testing.T) {
	ctx := context.Background()
	_, _, store := setup(t)

	e := ports.ContractEntries()[0]
	e.Keywords = []string{"renamed"}
	e.Variations = nil
	e.Question = "What is a premarket notification?"
	require.NoError(t, store.Put(ctx, e))

	got, err := store.Query(ctx, ports.KnowledgeQuery{Category: domain.DomainRegulatory, Tokens: []string{"510k"}})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.Query(ctx, ports.KnowledgeQuery{Category: domain.DomainRegulatory})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "reg-510k", got[0].ID, "replacing keeps the original position")
}

func TestRedisStore_CategoryMove(t *testing.T) {
	ctx := context.Background()
	_, _, store := setup(t)

	e := ports.ContractEntries()[1]
	e.Category = domain.DomainAnalytics
	require.NoError(t, store.Put(ctx, e))

	got, err := store.Query(ctx, ports.KnowledgeQuery{Category: domain.DomainRegulatory, Tokens: []string{"gmlp"}})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.Query(ctx, ports.KnowledgeQuery{Category: domain.DomainAnalytics, Tokens: []string{"gmlp"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "reg-gmlp", got[0].ID)
}

func TestRedisStore_Get(t *testing.T) {
	_, _, store := setup(t)

	e, err := store.Get(context.Background(), "asm-score")
	require.NoError(t, err)
	assert.Equal(t, "Scoring", e.Subcategory)

	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestRedisStore_RejectsInvalid(t *testing.T) {
	_, _, store := setup(t)
	err := store.Put(context.Background(), domain.KnowledgeEntry{ID: "broken"})
	assert.ErrorIs(t, err, domain.ErrInvalidEntry)
}

func TestRedisStore_UsageStream(t *testing.T) {
	ctx := context.Background()
	_, client, store := setup(t)

	rec := domain.UsageRecord{
		ID:             "rec-1",
		Domain:         domain.DomainRegulatory,
		Specialist:     "fda",
		Persona:        "quality-lead",
		Elapsed:        42 * time.Millisecond,
		QuestionPrefix: "What are the FDA requirements",
		At:             time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.Write(ctx, rec))

	msgs, err := client.XRange(ctx, "triage:usage", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "rec-1", msgs[0].Values["id"])
	assert.Equal(t, "fda", msgs[0].Values["specialist"])
	assert.Equal(t, "quality-lead", msgs[0].Values["persona"])
	assert.Equal(t, "42", msgs[0].Values["elapsed_ms"])
	assert.Equal(t, "0", msgs[0].Values["fallback"])
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, _, store := setup(t)
	mr.Close()

	_, err := store.Query(context.Background(), ports.KnowledgeQuery{
		Category: domain.DomainRegulatory,
		Tokens:   []string{"510k"},
	})
	assert.ErrorIs(t, err, domain.ErrLookupUnavailable)
}

func TestLocker_Exclusive(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	locker := redis.NewLocker(client, "triage:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "knowledge", time.Minute)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 120*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(short, "knowledge", time.Minute)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)

	require.NoError(t, unlock(ctx))

	unlock, err = locker.Lock(ctx, "knowledge", time.Minute)
	require.NoError(t, err)
	assert.NoError(t, unlock(ctx))
}
