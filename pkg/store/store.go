/*
Package store keeps the vanity numbers already generated for a caller, so a
repeat caller gets the same answer without a new search.

Two backends exist: an in-process LRU (MemoryStore) and Redis (RedisStore).
Open picks one from config.
*/
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bastiangx/vanityserve/pkg/config"
)

// ErrNotFound is returned by Get for a number without a record.
var ErrNotFound = errors.New("record not found")

// Record is what the store keeps per phone number.
type Record struct {
	PhoneNumber   string    `msgpack:"phoneNumber" json:"phoneNumber"`
	VanityNumbers []string  `msgpack:"vanityNumbers" json:"vanityNumbers"`
	LastModified  time.Time `msgpack:"lastModified" json:"lastModified"`
}

// Store reads and writes records keyed by phone number.
type Store interface {
	// Get returns the record for phoneNumber, or ErrNotFound.
	Get(ctx context.Context, phoneNumber string) (*Record, error)
	// Put writes rec, replacing any record for the same number.
	// A zero LastModified is stamped with the current time.
	Put(ctx context.Context, rec *Record) error
	Close() error
}

// Open builds the store selected by cfg.Backend.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.MemorySize)
	case "redis":
		return NewRedisStore(RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
			TTL:       cfg.TTL.Duration,
		})
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// stamp fills in LastModified and rejects records without a number.
func stamp(rec *Record) error {
	if rec == nil || rec.PhoneNumber == "" {
		return errors.New("record has no phone number")
	}
	if rec.LastModified.IsZero() {
		rec.LastModified = time.Now().UTC()
	}
	return nil
}
