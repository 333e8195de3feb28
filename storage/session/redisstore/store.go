// Package redisstore persists the session record in Redis.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/session"
)

type Store struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

var _ session.Store = (*Store)(nil)

// NewClient creates a client from conf and checks the connection.
func NewClient(ctx context.Context, conf core.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, pkgerrors.Wrapf(err, "connecting to redis at %s", conf.Addr)
	}
	return rdb, nil
}

// New returns a Store keeping the record at key. A zero ttl means no expiration.
func New(client *redis.Client, key string, ttl time.Duration) *Store {
	return &Store{client: client, key: key, ttl: ttl}
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNoSession
		}
		return nil, pkgerrors.Wrap(err, "reading session from redis")
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, data []byte) error {
	return pkgerrors.Wrap(s.client.Set(ctx, s.key, data, s.ttl).Err(), "writing session to redis")
}

func (s *Store) Clear(ctx context.Context) error {
	return pkgerrors.Wrap(s.client.Del(ctx, s.key).Err(), "deleting session from redis")
}
