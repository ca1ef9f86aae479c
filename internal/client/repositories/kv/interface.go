package kv

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("kv store closed")

// Repository is a string key-value store.
type Repository interface {
	// Get returns the value of key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set replaces the value of key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
