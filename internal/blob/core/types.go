// Package core defines the blob store abstraction that downloaded images
// are written through.
package core

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/agentstation/fiwdb/pkg/errors"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	// DriverFilesystem stores blobs as plain files under a root directory.
	DriverFilesystem Driver = "fs"
	// DriverS3 stores blobs in an S3 / MinIO compatible bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps blobs in process memory (tests, dry runs).
	DriverMemory Driver = "memory"
)

// ParseDriver validates a configured driver name.
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DriverFilesystem, nil
	case DriverFilesystem, DriverS3, DriverMemory:
		return d, nil
	default:
		return "", errors.NewValidationError("blob_driver", s, "must be one of fs, s3, memory")
	}
}

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key" yaml:"key"`
	Size         int64             `json:"size_bytes" yaml:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty" yaml:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified" yaml:"last_modified"`
}

// Store is a thin S3-like object store. Put is create-only: writing an
// existing key fails with an error matching errors.ErrAlreadyExists. Missing
// keys fail Get and Head with an error matching errors.ErrNotFound.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// CleanKey rejects empty, absolute and escaping keys and normalizes the rest
// to slash-separated form.
func CleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.NewValidationError("key", key, "empty key")
	}
	k := strings.ReplaceAll(key, "\\", "/")
	if strings.HasPrefix(k, "/") {
		return "", errors.NewValidationError("key", key, "absolute keys are not allowed")
	}
	for _, part := range strings.Split(k, "/") {
		if part == ".." {
			return "", errors.NewValidationError("key", key, "key escapes the store root")
		}
	}
	return path.Clean(k), nil
}

// ExistsError reports a create-only Put on an existing key.
func ExistsError(key string) error {
	return errors.WrapResource("put", "blob", key, errors.ErrAlreadyExists)
}

// CloneMetadata copies user metadata so callers cannot alias store state.
func CloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
