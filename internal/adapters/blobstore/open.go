// Package blobstore elige la implementación de blob.Store según la configuración.
package blobstore

import (
	"context"
	"fmt"

	"equine-clinic/internal/adapters/blobstore/memory"
	"equine-clinic/internal/adapters/blobstore/s3"
	"equine-clinic/internal/config"
	"equine-clinic/internal/ports/blob"
)

func Open(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	switch blob.Driver(cfg.Driver) {
	case blob.DriverMemory, "":
		return memory.New(), nil
	case blob.DriverS3:
		return s3.New(ctx, s3.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
