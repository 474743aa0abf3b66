package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// errAbsent signals a key with no stored value. Adapters translate their
// backend's miss condition into this so the typed layer stays backend-agnostic.
var errAbsent = errors.New("key absent")

// kvStore is the persistence service boundary: JSON blobs by string key.
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// profileKey holds the userProfile for the lifetime of the installation.
const profileKey = "userProfile"

// logKey addresses one calendar day's log.
func logKey(date string) string {
	return "log_" + date
}

/* ─── Typed store ────────────────────────────────────────────────────── */

// logStore wraps a kvStore with the JSON shapes of the two persisted
// entities. It owns key naming; nothing else touches raw keys.
type logStore struct {
	kv kvStore
}

// loadProfile returns the stored profile, or nil with no error when none has
// been submitted yet.
func (s *logStore) loadProfile(ctx context.Context) (*userProfile, error) {
	raw, err := s.kv.Get(ctx, profileKey)
	if errors.Is(err, errAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	var p userProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse stored profile: %w", err)
	}
	return &p, nil
}

func (s *logStore) saveProfile(ctx context.Context, p *userProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.kv.Set(ctx, profileKey, raw); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// loadLog returns the stored log for date, or a fresh empty one when the date
// has never been written — first access to a new day needs no special casing
// upstream.
func (s *logStore) loadLog(ctx context.Context, date string) (*dailyLog, error) {
	raw, err := s.kv.Get(ctx, logKey(date))
	if errors.Is(err, errAbsent) {
		return newDailyLog(date), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load log %s: %w", date, err)
	}
	var l dailyLog
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse stored log %s: %w", date, err)
	}
	l.normalize()
	return &l, nil
}

func (s *logStore) saveLog(ctx context.Context, l *dailyLog) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal log: %w", err)
	}
	if err := s.kv.Set(ctx, logKey(l.Date), raw); err != nil {
		return fmt.Errorf("save log %s: %w", l.Date, err)
	}
	return nil
}

/* ─── Redis adapter ──────────────────────────────────────────────────── */

// redisKV is the default backend. Values are stored without expiry — logs
// stay retrievable after their day has passed.
type redisKV struct {
	client *redis.Client
}

func newRedisKV(addr, password string) *redisKV {
	return &redisKV{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})}
}

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errAbsent
	}
	return val, err
}

func (r *redisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

/* ─── Postgres adapter ───────────────────────────────────────────────── */

// postgresKV keeps the same key-value contract on a single JSONB table, for
// deployments that already run Postgres and nothing else.
type postgresKV struct {
	pool *pgxpool.Pool
}

func newPostgresKV(ctx context.Context, dbURL string) (*postgresKV, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Simple protocol avoids stale prepared-statement plans after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS kv_entries (
			key   TEXT PRIMARY KEY,
			value JSONB NOT NULL
		)`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure kv_entries table: %w", err)
	}
	return &postgresKV{pool: pool}, nil
}

func (p *postgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx,
		"SELECT value FROM kv_entries WHERE key = @key",
		pgx.NamedArgs{"key": key}).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errAbsent
	}
	return value, err
}

func (p *postgresKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO kv_entries (key, value) VALUES (@key, @value)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		pgx.NamedArgs{"key": key, "value": value})
	return err
}

/* ─── In-memory adapter ──────────────────────────────────────────────── */

// memoryKV backs tests and the degraded in-memory-only session that a store
// connection failure falls back to. Values are copied on both sides so
// callers can't alias the stored bytes.
type memoryKV struct {
	data map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := m.data[key]
	if !ok {
		return nil, errAbsent
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}
