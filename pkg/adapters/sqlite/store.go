// Package sqlite persists curated knowledge and usage records in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/triage/pkg/adapters/memory"
	"github.com/aretw0/triage/pkg/domain"
	"github.com/aretw0/triage/pkg/ports"
)

// Store implements ports.KnowledgeStore and ports.UsageSink using SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath. Use ":memory:" for a private
// in-memory database.
func Open(dbPath string) (*Store, error) {
	// foreign_keys is per connection and drives the token cascade.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn += "&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS knowledge_entries (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		payload TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_category ON knowledge_entries(category, position);

	CREATE TABLE IF NOT EXISTS knowledge_tokens (
		entry_id TEXT NOT NULL REFERENCES knowledge_entries(id) ON DELETE CASCADE,
		token TEXT NOT NULL,
		PRIMARY KEY (entry_id, token)
	);
	CREATE INDEX IF NOT EXISTS idx_tokens_token ON knowledge_tokens(token);

	CREATE TABLE IF NOT EXISTS usage_records (
		id TEXT PRIMARY KEY,
		domain TEXT NOT NULL,
		specialist TEXT,
		persona TEXT,
		elapsed_ms INTEGER NOT NULL,
		question_prefix TEXT NOT NULL,
		fallback INTEGER NOT NULL DEFAULT 0,
		recorded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_usage_domain ON usage_records(domain, recorded_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Put inserts or replaces entries and their token index in one transaction.
func (s *Store) Put(ctx context.Context, entries ...domain.KnowledgeEntry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) FROM knowledge_entries`).Scan(&next); err != nil {
		return fmt.Errorf("read position: %w", err)
	}

	now := time.Now().Unix()
	for _, e := range entries {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal entry %s: %w", e.ID, err)
		}
		next++
		_, err = tx.ExecContext(ctx, `
		INSERT INTO knowledge_entries (id, position, category, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
			e.ID, next, e.Category, string(payload), now)
		if err != nil {
			return fmt.Errorf("upsert entry %s: %w", e.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM knowledge_tokens WHERE entry_id = ?`, e.ID); err != nil {
			return fmt.Errorf("clear tokens of %s: %w", e.ID, err)
		}
		for _, tok := range memory.Tokens(e) {
			if _, err := tx.ExecContext(ctx, `INSERT INTO knowledge_tokens (entry_id, token) VALUES (?, ?)`, e.ID, tok); err != nil {
				return fmt.Errorf("index token %q of %s: %w", tok, e.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Query implements ports.KnowledgeStore.
func (s *Store) Query(ctx context.Context, q ports.KnowledgeQuery) ([]domain.KnowledgeEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if len(q.Tokens) == 0 {
		rows, err = s.db.QueryContext(ctx,
			`SELECT payload FROM knowledge_entries WHERE category = ? ORDER BY position`, q.Category)
	} else {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(q.Tokens)), ",")
		args := make([]any, 0, 1+len(q.Tokens))
		args = append(args, q.Category)
		for _, t := range q.Tokens {
			args = append(args, t)
		}
		rows, err = s.db.QueryContext(ctx, `
		SELECT e.payload FROM knowledge_entries e
		WHERE e.category = ?
		  AND EXISTS (SELECT 1 FROM knowledge_tokens t WHERE t.entry_id = e.id AND t.token IN (`+placeholders+`))
		ORDER BY e.position`, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query entries: %w", domain.ErrLookupUnavailable, err)
	}
	defer rows.Close()

	var out []domain.KnowledgeEntry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %w", domain.ErrLookupUnavailable, err)
		}
		var e domain.KnowledgeEntry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate entries: %w", domain.ErrLookupUnavailable, err)
	}
	return out, nil
}

// Get returns one entry by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.KnowledgeEntry, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM knowledge_entries WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return domain.KnowledgeEntry{}, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
	}
	if err != nil {
		return domain.KnowledgeEntry{}, fmt.Errorf("get entry %s: %w", id, err)
	}
	var e domain.KnowledgeEntry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return domain.KnowledgeEntry{}, fmt.Errorf("decode entry %s: %w", id, err)
	}
	return e, nil
}

// List returns every entry in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM knowledge_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []domain.KnowledgeEntry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		var e domain.KnowledgeEntry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Write implements ports.UsageSink.
func (s *Store) Write(ctx context.Context, rec domain.UsageRecord) error {
	var specialist, persona any
	if rec.Specialist != "" {
		specialist = rec.Specialist
	}
	if rec.Persona != "" {
		persona = rec.Persona
	}
	fallback := 0
	if rec.Fallback {
		fallback = 1
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO usage_records (id, domain, specialist, persona, elapsed_ms, question_prefix, fallback, recorded_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Domain, specialist, persona, rec.ElapsedMillis(), rec.QuestionPrefix, fallback, rec.At.Unix())
	if err != nil {
		return fmt.Errorf("insert usage record: %w", err)
	}
	return nil
}

// DomainCount is the number of usage records of one domain.
type DomainCount struct {
	Domain string
	Count  int
}

// UsageByDomain counts usage records per domain, most used first.
func (s *Store) UsageByDomain(ctx context.Context) ([]DomainCount, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT domain, COUNT(*) FROM usage_records GROUP BY domain ORDER BY COUNT(*) DESC, domain`)
	if err != nil {
		return nil, fmt.Errorf("count usage: %w", err)
	}
	defer rows.Close()

	var out []DomainCount
	for rows.Next() {
		var c DomainCount
		if err := rows.Scan(&c.Domain, &c.Count); err != nil {
			return nil, fmt.Errorf("scan usage count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
