// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
)

// FakeKV is an in-memory key-value store with error injection for testing.
// It satisfies storage.KV.
type FakeKV struct {
	mu     sync.RWMutex
	values map[string]string

	// Error injection for testing
	GetErr    error
	SetErr    error
	DeleteErr error

	// Call counters
	Gets int
	Sets int
}

// NewFakeKV creates an empty FakeKV.
func NewFakeKV() *FakeKV {
	return &FakeKV{values: make(map[string]string)}
}

// Put stores a raw value, bypassing error injection.
func (f *FakeKV) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Value returns the raw stored value.
func (f *FakeKV) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Get implements storage.KV.
func (f *FakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Gets++
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements storage.KV.
func (f *FakeKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sets++
	if f.SetErr != nil {
		return f.SetErr
	}
	f.values[key] = value
	return nil
}

// Delete implements storage.KV.
func (f *FakeKV) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.values, key)
	return nil
}
