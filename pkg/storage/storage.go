package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

type Provider interface {
	Metadata(ctx context.Context, bucket, key string) (*Metadata, error)
	Object(ctx context.Context, bucket, key string, options *ObjectOptions) (*Object, error)
}

var (
	ErrNotFound     = errors.New("object not found")
	ErrAccessDenied = errors.New("object access denied")
)

type Metadata struct {
	ContentType   string
	ContentLength int64

	ETag         string
	VersionID    string
	LastModified time.Time
}

type ObjectOptions struct {
	// Version selects a specific object version. Empty reads the latest.
	Version string
}

type Object struct {
	Bucket string
	Key    string

	Version     string
	ContentType string
	Content     io.ReadCloser
}
