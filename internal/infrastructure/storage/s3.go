// Package storage sube los reportes PDF a un bucket S3-compatible.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/clientbottle/clientbottle-api/pkg/config"
)

// S3Storage implementa report.Storage sobre el cliente MinIO (compatible con
// AWS S3 y con MinIO autoalojado).
type S3Storage struct {
	client *minio.Client
	cfg    config.S3Config
}

// NewS3Storage construye el cliente de objetos.
func NewS3Storage(cfg config.S3Config) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: crear cliente: %w", err)
	}
	return &S3Storage{client: client, cfg: cfg}, nil
}

// Upload sube el objeto y devuelve su URL pública.
func (s *S3Storage) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", objectName, err)
	}
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, objectName), nil
}
