package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/diamondgarment/backend/config"
	"github.com/diamondgarment/backend/utils"
)

// ObjectStore uploads images to an S3-compatible bucket.
type ObjectStore struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

// NewObjectStore builds a client from the storage configuration.
func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("object storage endpoint and credentials are required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &ObjectStore{mc: mc, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		log.Info().Str("bucket", s.bucket).Msg("created object storage bucket")
	}
	return nil
}

// Host is the public host images are served from, for the content security policy.
func (s *ObjectStore) Host() string {
	u, err := url.Parse(s.publicURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// Save uploads data under name and returns its absolute URL.
func (s *ObjectStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	_, err := s.mc.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  utils.ContentType(name),
		CacheControl: "public, max-age=31536000",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return s.publicURL + "/" + url.PathEscape(name), nil
}
