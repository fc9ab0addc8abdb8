package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when no object exists at a key
var ErrNotFound = errors.New("storage: object not found")

// ErrInvalidKey is returned for keys that are empty or escape the store
var ErrInvalidKey = errors.New("storage: invalid key")

// Object describes a stored file
type Object struct {
	Key      string    `json:"key"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// FileStore is a blob store addressed by slash separated keys such as
// {businessID}/compliance/{slot}/{filename}.
type FileStore interface {
	// Put writes r to key, replacing any existing object
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	// Open returns a reader for the object at key or ErrNotFound
	Open(ctx context.Context, key string) (io.ReadCloser, *Object, error)
	// List returns every object whose key starts with prefix
	List(ctx context.Context, prefix string) ([]Object, error)
	// Delete removes the object at key; a missing object is not an error
	Delete(ctx context.Context, key string) error
}
