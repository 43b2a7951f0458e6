package store

import (
	"context"
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryStore keeps the most recently used records in process memory.
type MemoryStore struct {
	cache *lru.Cache[string, Record]
}

// NewMemoryStore returns a store holding at most size records.
func NewMemoryStore(size int) (*MemoryStore, error) {
	cache, err := lru.New[string, Record](size)
	if err != nil {
		return nil, fmt.Errorf("create memory store: %w", err)
	}
	return &MemoryStore{cache: cache}, nil
}

// Get returns a copy of the stored record.
func (m *MemoryStore) Get(_ context.Context, phoneNumber string) (*Record, error) {
	rec, ok := m.cache.Get(phoneNumber)
	if !ok {
		return nil, ErrNotFound
	}
	rec.VanityNumbers = slices.Clone(rec.VanityNumbers)
	return &rec, nil
}

// Put stores a copy of rec.
func (m *MemoryStore) Put(_ context.Context, rec *Record) error {
	if err := stamp(rec); err != nil {
		return err
	}
	stored := *rec
	stored.VanityNumbers = slices.Clone(rec.VanityNumbers)
	m.cache.Add(rec.PhoneNumber, stored)
	return nil
}

// Len returns the number of records held.
func (m *MemoryStore) Len() int {
	return m.cache.Len()
}

// Close drops all records.
func (m *MemoryStore) Close() error {
	m.cache.Purge()
	return nil
}
