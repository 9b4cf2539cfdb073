package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"alfredhub/config"
	"alfredhub/types"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 5 * time.Second

// RedisConfig configures the Redis-backed document store.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string // redis key holding the JSON document
}

// RedisBackend stores the document as a JSON blob under a single key.
// It gives durability beyond the local filesystem but keeps the same
// whole-document, last-write-wins semantics as the file backend.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackendFromEnv creates a RedisBackend using environment variables
// MYBLOG_REDIS_ADDR, MYBLOG_REDIS_PASS, MYBLOG_REDIS_DB (optional),
// MYBLOG_REDIS_KEY (optional).
func NewRedisBackendFromEnv() (*RedisBackend, error) {
	addr := os.Getenv("MYBLOG_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db := 0
	if v := os.Getenv("MYBLOG_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}
	key := os.Getenv("MYBLOG_REDIS_KEY")
	if key == "" {
		key = config.RedisDBKey
	}

	cfg := RedisConfig{
		Addr:     addr,
		Password: os.Getenv("MYBLOG_REDIS_PASS"),
		DB:       db,
		Key:      key,
	}
	return NewRedisBackend(cfg)
}

// NewRedisBackend creates a RedisBackend and verifies connectivity.
func NewRedisBackend(cfg RedisConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisBackend{client: client, key: cfg.Key}, nil
}

// Close closes the underlying Redis client.
func (r *RedisBackend) Close() error {
	return r.client.Close()
}

// Load fetches the document. A missing key or malformed blob is treated as
// an empty store.
func (r *RedisBackend) Load() (types.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return emptyDatabase(), nil
		}
		return types.Database{}, err
	}

	var db types.Database
	if err := json.Unmarshal(raw, &db); err != nil {
		return emptyDatabase(), nil
	}
	if db.Genres == nil {
		db.Genres = []types.Genre{}
	}
	if db.Articles == nil {
		db.Articles = []types.Article{}
	}
	return db, nil
}

// Save rewrites the full document under the configured key.
func (r *RedisBackend) Save(db types.Database) error {
	raw, err := json.Marshal(db)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return r.client.Set(ctx, r.key, raw, 0).Err()
}
