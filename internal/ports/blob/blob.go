// Package blob define la abstracción de almacenamiento de archivos (imágenes de eventos).
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

type Driver string

const (
	DriverMemory Driver = "memory"
	DriverS3     Driver = "s3"
)

type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store es una abstracción mínima estilo S3.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Driver() Driver
}

var (
	ErrNotFound    = errors.New("blob: not found")
	ErrExists      = errors.New("blob: already exists")
	ErrUnsupported = errors.New("blob: unsupported operation")
)
