package storage

// Package storage holds the object-store abstraction for buyer document
// files. Implementations stream content; nothing touches local disk.

import (
	"context"
	"io"
	"time"
)

// UploadOptions carries optional parameters for storing an object. Size is
// the exact byte count when known, -1 otherwise.
type UploadOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Store is an S3-compatible object store for document files.
type Store interface {
	// Upload streams an object under the given key.
	Upload(ctx context.Context, key string, r io.Reader, opt UploadOptions) (ObjectInfo, error)

	// Remove deletes an object by key.
	Remove(ctx context.Context, key string) error

	// PresignGet returns a time-limited download URL usable without
	// credentials; this is how delivered documents reach buyers.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
