// Package redis serves curated knowledge from Redis and appends usage records to
// a Redis stream.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/triage/pkg/adapters/memory"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/ports"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "triage:"

// DefaultStreamMaxLen caps the usage stream (approximate trimming).
const DefaultStreamMaxLen = 10000

const lockTTL = 30 * time.Second

// Store implements ports.KnowledgeStore and ports.UsageSink.
//
// Layout:
//
//	<prefix>entry:<id>                 JSON entry
//	<prefix>category:<cat>             ZSET of ids scored by insertion sequence
//	<prefix>token:<cat>:<token>        SET of ids
//	<prefix>entry-tokens:<id>          SET of the index keys of one entry
//	<prefix>seq                        insertion counter
//	<prefix>usage                      usage stream
type Store struct {
	client    backend.UniversalClient
	prefix    string
	locker    ports.DistributedLocker
	streamMax int64
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLocker serializes Put across instances.
func WithLocker(l ports.DistributedLocker) Option {
	return func(s *Store) {
		s.locker = l
	}
}

// WithStreamMaxLen caps the usage stream length.
func WithStreamMaxLen(n int64) Option {
	return func(s *Store) {
		s.streamMax = n
	}
}

// New connects to addr.
func New(addr, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client:    client,
		prefix:    DefaultPrefix,
		streamMax: DefaultStreamMaxLen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping verifies connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) entryKey(id string) string {
	return s.prefix + "entry:" + id
}

func (s *Store) categoryKey(cat string) string {
	return s.prefix + "category:" + cat
}

func (s *Store) tokenKey(cat, tok string) string {
	return s.prefix + "token:" + cat + ":" + tok
}

func (s *Store) entryTokensKey(id string) string {
	return s.prefix + "entry-tokens:" + id
}

func (s *Store) seqKey() string {
	return s.prefix + "seq"
}

func (s *Store) streamKey() string {
	return s.prefix + "usage"
}


// Put writes entries and their index. Replaced entries keep their position
// unless their category changes.
func (s *Store) Put(ctx context.Context, entries ...domain.KnowledgeEntry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, "knowledge", lockTTL)
		if err != nil {
			return err
		}
		defer unlock(context.Background())
	}

	for _, e := range entries {
		if err := s.put(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) put(ctx context.Context, e domain.KnowledgeEntry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry %s: %w", e.ID, err)
	}

	old, err := s.get(ctx, e.ID)
	exists := err == nil
	if err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
		return err
	}
	staleKeys, err := s.client.SMembers(ctx, s.entryTokensKey(e.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to read index of %s: %w", e.ID, err)
	}

	var seq int64
	if !exists || old.Category != e.Category {
		if seq, err = s.client.Incr(ctx, s.seqKey()).Result(); err != nil {
			return fmt.Errorf("failed to allocate position: %w", err)
		}
	}

	tokens := memory.Tokens(e)
	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		for _, k := range staleKeys {
			pipe.SRem(ctx, k, e.ID)
		}
		pipe.Del(ctx, s.entryTokensKey(e.ID))
		if exists && old.Category != e.Category {
			pipe.ZRem(ctx, s.categoryKey(old.Category), e.ID)
		}
		if seq > 0 {
			pipe.ZAdd(ctx, s.categoryKey(e.Category), backend.Z{Score: float64(seq), Member: e.ID})
		}
		pipe.Set(ctx, s.entryKey(e.ID), payload, 0)
		for _, tok := range tokens {
			key := s.tokenKey(e.Category, tok)
			pipe.SAdd(ctx, key, e.ID)
			pipe.SAdd(ctx, s.entryTokensKey(e.ID), key)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write entry %s: %w", e.ID, err)
	}
	return nil
}

// Query implements ports.KnowledgeStore.
func (s *Store) Query(ctx context.Context, q ports.KnowledgeQuery) ([]domain.KnowledgeEntry, error) {
	ordered, err := s.client.ZRange(ctx, s.categoryKey(q.Category), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, err)
	}

	ids := ordered
	if len(q.Tokens) > 0 {
		keys := make([]string, 0, len(q.Tokens))
		for _, t := range q.Tokens {
			keys = append(keys, s.tokenKey(q.Category, t))
		}
		hits, err := s.client.SUnion(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, err)
		}
		hitSet := make(map[string]struct{}, len(hits))
		for _, h := range hits {
			hitSet[h] = struct{}{}
		}
		ids = ids[:0:0]
		for _, id := range ordered {
			if _, ok := hitSet[id]; ok {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.entryKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLookupUnavailable, err)
	}

	out := make([]domain.KnowledgeEntry, 0, len(vals))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			// index points at a deleted entry
			continue
		}
		var e domain.KnowledgeEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("failed to decode entry %s: %w", ids[i], err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Get returns one entry by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.KnowledgeEntry, error) {
	return s.get(ctx, id)
}

func (s *Store) get(ctx context.Context, id string) (domain.KnowledgeEntry, error) {
	raw, err := s.client.Get(ctx, s.entryKey(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return domain.KnowledgeEntry{}, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
	}
	if err != nil {
		return domain.KnowledgeEntry{}, fmt.Errorf("failed to read entry %s: %w", id, err)
	}
	var e domain.KnowledgeEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return domain.KnowledgeEntry{}, fmt.Errorf("failed to decode entry %s: %w", id, err)
	}
	return e, nil
}

// Write implements ports.UsageSink by appending to the usage stream.
func (s *Store) Write(ctx context.Context, rec domain.UsageRecord) error {
	fallback := "0"
	if rec.Fallback {
		fallback = "1"
	}
	err := s.client.XAdd(ctx, &backend.XAddArgs{
		Stream: s.streamKey(),
		MaxLen: s.streamMax,
		Approx: true,
		Values: map[string]any{
			"id":              rec.ID,
			"domain":          rec.Domain,
			"specialist":      rec.Specialist,
			"persona":         rec.Persona,
			"elapsed_ms":      rec.ElapsedMillis(),
			"question_prefix": rec.QuestionPrefix,
			"fallback":        fallback,
			"at":              rec.At.UTC().Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append usage record: %w", err)
	}
	return nil
}
