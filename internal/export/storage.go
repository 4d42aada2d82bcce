package export

import (
	"context"
	"fmt"

	"electroplan/internal/blob"
	blobfs "electroplan/internal/blob/fs"
	blobmemory "electroplan/internal/blob/memory"
	blobs3 "electroplan/internal/blob/s3"
	"electroplan/internal/config"
)

// OpenBlobStore builds the configured artifact store. Defaults to the local
// filesystem.
func OpenBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	driver := blob.Driver(cfg.BlobDriver)
	if driver == "" {
		driver = blob.DriverFilesystem
	}
	switch driver {
	case blob.DriverFilesystem:
		return blobfs.New(cfg.BlobFSRoot)
	case blob.DriverMemory:
		return blobmemory.New(), nil
	case blob.DriverS3:
		store, err := blobs3.New(ctx, blobs3.Config{
			Region:   cfg.S3Region,
			Bucket:   cfg.S3Bucket,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
