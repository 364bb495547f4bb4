// Package kv - lightweight key-value storage for scalar settings
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("key not found")

// Store scalar key-value storage
type Store interface {
	/*
		Get read the value of a key

			@param ctx context.Context - execution context
			@param key string - the key
			@returns the value, or ErrNotFound
	*/
	Get(ctx context.Context, key string) (string, error)

	/*
		Set write the value of a key

			@param ctx context.Context - execution context
			@param key string - the key
			@param value string - the value
	*/
	Set(ctx context.Context, key, value string) error

	/*
		Delete remove a key. Removing a missing key is not an error.

			@param ctx context.Context - execution context
			@param key string - the key
	*/
	Delete(ctx context.Context, key string) error
}
