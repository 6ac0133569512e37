package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"library-cms/internal/domain/maintenance"

	"github.com/redis/go-redis/v9"
)

const maintenanceKey = "librarycms:maintenance"

var ErrRedisUnavailable = errors.New("redis unavailable")

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return client, nil
}

// RedisStore shares the maintenance flag across every instance.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context) (maintenance.State, error) {
	var state maintenance.State
	raw, err := s.client.Get(ctx, maintenanceKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return state, fmt.Errorf("decode maintenance state: %w", err)
	}
	return state, nil
}

func (s *RedisStore) Set(ctx context.Context, state maintenance.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode maintenance state: %w", err)
	}
	if err := s.client.Set(ctx, maintenanceKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
