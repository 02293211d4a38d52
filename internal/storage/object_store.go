// Package storage implements the image store for brand and product
// pictures.  Uploads go to a single MinIO bucket; the object path is
// returned to the caller and persisted on the catalog entity.
package storage

import (
    "context"
    "fmt"
    "io"
    "net/url"
    "path"
    "strings"

    "github.com/google/uuid"
    "github.com/minio/minio-go/v7"
    "github.com/minio/minio-go/v7/pkg/credentials"

    "github.com/novakir/storefront/internal/config"
)

// ImageStore wraps a MinIO client bound to one bucket.
type ImageStore struct {
    client *minio.Client
    bucket string
}

// NewImageStore builds the MinIO client from config.  An http(s) endpoint
// is split into host + TLS flag; bare host:port endpoints use the UseSSL
// setting directly.
func NewImageStore(cfg config.StorageConfig) (*ImageStore, error) {
    endpoint := cfg.Endpoint
    useSSL := cfg.UseSSL

    if strings.HasPrefix(endpoint, "http") {
        u, err := url.Parse(endpoint)
        if err != nil {
            return nil, fmt.Errorf("parse endpoint: %w", err)
        }
        endpoint = u.Host
        useSSL = u.Scheme == "https"
    }

    client, err := minio.New(endpoint, &minio.Options{
        Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
        Secure: useSSL,
        Region: cfg.Region,
    })
    if err != nil {
        return nil, fmt.Errorf("init minio: %w", err)
    }

    return &ImageStore{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
// Called once at startup.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
    exists, err := s.client.BucketExists(ctx, s.bucket)
    if err != nil {
        return fmt.Errorf("bucket exists %s: %w", s.bucket, err)
    }
    if !exists {
        if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
            return fmt.Errorf("create bucket %s: %w", s.bucket, err)
        }
    }
    return nil
}

// Save streams one uploaded image into the bucket under a fresh
// uuid-based object name that keeps the original file extension, and
// returns the object path to store on the entity.  prefix groups objects
// by entity kind ("brands", "products").
func (s *ImageStore) Save(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (string, error) {
    ext := strings.ToLower(path.Ext(filename))
    object := path.Join(prefix, uuid.NewString()+ext)
    _, err := s.client.PutObject(ctx, s.bucket, object, r, size, minio.PutObjectOptions{
        ContentType: contentType,
    })
    if err != nil {
        return "", fmt.Errorf("put object %s: %w", object, err)
    }
    return s.bucket + "/" + object, nil
}
