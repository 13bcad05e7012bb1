// Package goredis implements db.Store on top of go-redis/v9.
package goredis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kailas-cloud/docstats/internal/db"
)

var _ db.Store = (*Store)(nil)

// Config holds connection parameters for the go-redis store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	PoolSize int
}

// Store implements db.Store via go-redis for Redis 8+ (Query Engine).
type Store struct {
	rdb redis.UniversalClient
}

// NewStore creates a go-redis backed store. A single address yields a plain
// client, several addresses a cluster client.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
		Protocol: 2, // FT.SEARCH replies are parsed as flat RESP2 arrays
	})
	return &Store{rdb: rdb}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	_ = s.rdb.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (s *Store) do(ctx context.Context, cmd string, args []string) *redis.Cmd {
	all := make([]interface{}, 0, len(args)+1)
	all = append(all, cmd)
	for _, a := range args {
		all = append(all, a)
	}
	return s.rdb.Do(ctx, all...)
}

// isRedisErr checks if err is a Redis server error containing substr (case-insensitive).
func isRedisErr(err error, substr string) bool {
	var re redis.Error
	if !errors.As(err, &re) {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}
