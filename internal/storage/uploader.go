package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/metricasboss/summit-cert-api/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader persists generated certificates into the fixed bucket and hands
// back the public retrieval URL. Keys are derived from the caller supplied id
// verbatim, so resubmitting the same id overwrites the previous object.
type Uploader interface {
	Upload(ctx context.Context, pdf []byte, id string) (string, error)
}

type MinioUploader struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewMinioClient(cfg config.StorageConfig) (*minio.Client, error) {
	return minio.New(cfg.ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: cfg.USE_SSL,
	})
}

func NewMinioUploader(client *minio.Client, cfg config.StorageConfig) *MinioUploader {
	return &MinioUploader{client: client, cfg: cfg}
}

// ObjectKey derives the storage key for a certificate id.
func ObjectKey(prefix, id string) string {
	return path.Join(prefix, id+".pdf")
}

// ObjectURL is the public retrieval location of a stored certificate. The
// bucket is assumed publicly readable, no signing or expiry.
func ObjectURL(cfg config.StorageConfig, id string) string {
	scheme := "https"
	if !cfg.USE_SSL {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.ENDPOINT, cfg.Bucket, ObjectKey(cfg.Prefix, id))
}

func (u *MinioUploader) Upload(ctx context.Context, pdf []byte, id string) (string, error) {
	if err := u.createBucketIfNotExists(ctx); err != nil {
		return "", fmt.Errorf("failed to create bucket: %w", err)
	}

	key := ObjectKey(u.cfg.Prefix, id)

	_, err := u.client.PutObject(
		ctx,
		u.cfg.Bucket,
		key,
		bytes.NewReader(pdf),
		int64(len(pdf)),
		minio.PutObjectOptions{
			ContentType: "application/pdf",
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload certificate to bucket %s: %w", u.cfg.Bucket, err)
	}

	return ObjectURL(u.cfg, id), nil
}

func (u *MinioUploader) createBucketIfNotExists(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.cfg.Bucket)
	if err != nil {
		return err
	}

	if !exists {
		err = u.client.MakeBucket(ctx, u.cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}
