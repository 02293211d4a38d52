package config

import "os"

// StorageConfig holds the MinIO connection settings for the image store.
// Brand and product images are written to a single bucket; the object
// path returned by the store is persisted on the catalog entity.
type StorageConfig struct {
    Endpoint  string
    AccessKey string
    SecretKey string
    Bucket    string
    Region    string
    UseSSL    bool
}

// LoadStorageConfig reads MinIO settings from the environment.  The
// endpoint, access key and secret are required whenever uploads are
// expected to work; an empty endpoint disables the store and upload
// endpoints will reject image payloads.
func LoadStorageConfig() StorageConfig {
    return StorageConfig{
        Endpoint:  os.Getenv("MINIO_ENDPOINT"),
        AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
        SecretKey: os.Getenv("MINIO_SECRET_KEY"),
        Bucket:    envStr("MINIO_BUCKET", "catalog-images"),
        Region:    os.Getenv("MINIO_REGION"),
        UseSSL:    envBool("MINIO_USE_SSL", false),
    }
}
