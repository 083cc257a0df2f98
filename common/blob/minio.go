package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/memorias-app/memorias/common/config"
	"github.com/memorias-app/memorias/common/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultContentType = "application/octet-stream"

// minioAPI is the subset of minio.Client used by MinioStore, extracted so
// tests can substitute a fake.
type minioAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioStore implements Store against an S3-compatible object store
type MinioStore struct {
	client        minioAPI
	bucket        string
	publicBaseURL string
	log           *logger.Logger
}

// NewMinioStore creates a store from blob configuration
func NewMinioStore(cfg *config.Config, log *logger.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Blob.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Blob.AccessKey, cfg.Blob.SecretKey, ""),
		Secure: cfg.Blob.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	return &MinioStore{
		client:        client,
		bucket:        cfg.Blob.Bucket,
		publicBaseURL: strings.TrimRight(cfg.Blob.PublicBaseURL, "/"),
		log:           log,
	}, nil
}

// NewMinioStoreWithClient wires an explicit client; used by tests
func NewMinioStoreWithClient(client minioAPI, bucket, publicBaseURL string, log *logger.Logger) *MinioStore {
	return &MinioStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
	}
}

// Upload stores an object under the given path
func (s *MinioStore) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = defaultContentType
	}

	_, err := s.client.PutObject(ctx, s.bucket, path, reader, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("upload object %s: %w", path, err)
	}

	s.log.Debug("uploaded object", "bucket", s.bucket, "path", path, "size", size)
	return nil
}

// PublicURL returns the externally resolvable URL for an object path
func (s *MinioStore) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, path)
}

// Remove deletes objects by path, continuing past individual failures and
// returning the first error encountered
func (s *MinioStore) Remove(ctx context.Context, paths ...string) error {
	var firstErr error
	for _, path := range paths {
		err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
		if err != nil {
			s.log.Warn("remove object failed", "bucket", s.bucket, "path", path, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("remove object %s: %w", path, err)
			}
			continue
		}
		s.log.Debug("removed object", "bucket", s.bucket, "path", path)
	}
	return firstErr
}

// PathFromURL recovers the object path from a public URL by splitting on the
// bucket segment, mirroring how media URLs are minted by PublicURL
func (s *MinioStore) PathFromURL(rawURL string) string {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return ""
	}
	return rawURL[idx+len(marker):]
}
