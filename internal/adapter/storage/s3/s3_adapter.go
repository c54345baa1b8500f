package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/brumerie/marketplace-service/internal/platform/logger"
)

// S3Storage stores listing images and avatars in a MinIO bucket and hands
// back directly addressable URLs.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger logger.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log logger.Logger) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", bucketName, err)
		}
	}

	log.Info("S3Storage: initialized", "endpoint", endpoint, "bucket", bucketName, "use_ssl", useSSL)
	return &S3Storage{client: client, bucket: bucketName, logger: log}, nil
}

// Upload writes the object under the given key and returns its public URL.
// Keys are chosen by callers (uuid-based), so an unreferenced object left
// behind by a failed flow is harmless.
func (s *S3Storage) Upload(ctx context.Context, objectKey string, data []byte) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("S3Storage.Upload: PutObject failed", "bucket", s.bucket, "key", objectKey, "error", err.Error())
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	s.logger.Debug("S3Storage.Upload: object stored",
		"bucket", info.Bucket, "key", info.Key, "size", info.Size)

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey), nil
}
