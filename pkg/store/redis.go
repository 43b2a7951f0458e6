package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	// TTL of zero keeps records forever.
	TTL time.Duration
}

// RedisStore keeps msgpack encoded records in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and checks the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	log.Debugf("Connected to redis at %s (db %d)", opts.Addr, opts.DB)
	return NewRedisStoreWithClient(client, opts.KeyPrefix, opts.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(phoneNumber string) string {
	return r.prefix + phoneNumber
}

// Get fetches and decodes the record for phoneNumber.
func (r *RedisStore) Get(ctx context.Context, phoneNumber string) (*Record, error) {
	data, err := r.client.Get(ctx, r.key(phoneNumber)).Bytes()
	if err != nil {
		if IsNilError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", phoneNumber, err)
	}

	var rec Record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", phoneNumber, err)
	}
	return &rec, nil
}

// Put encodes and writes rec.
func (r *RedisStore) Put(ctx context.Context, rec *Record) error {
	if err := stamp(rec); err != nil {
		return err
	}
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.PhoneNumber, err)
	}
	if err := r.client.Set(ctx, r.key(rec.PhoneNumber), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", rec.PhoneNumber, err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// IsNilError reports whether err is Redis' "key does not exist" reply.
func IsNilError(err error) bool {
	return errors.Is(err, redis.Nil)
}
