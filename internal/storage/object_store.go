package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"academyhub/api/internal/apperr"
	"academyhub/api/internal/config"
)

// maxLogoBytes caps uploaded academy logos at 2 MiB.
const maxLogoBytes = 2 << 20

type ObjectStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
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

	return &ObjectStore{
		client: client,
		cfg:    cfg,
	}, nil
}

func (s *ObjectStore) EnsureBuckets(ctx context.Context) error {
	bucket := s.cfg.BucketLogos
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}
	return nil
}

var logoExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// PutLogo stores an academy logo and returns its object URL. The content type
// is sniffed from the payload, not trusted from the request.
func (s *ObjectStore) PutLogo(ctx context.Context, academyID string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxLogoBytes+1))
	if err != nil {
		return "", apperr.Internal("read logo", err)
	}
	if len(data) == 0 {
		return "", apperr.Validation("logo file is empty")
	}
	if len(data) > maxLogoBytes {
		return "", apperr.Validation("logo exceeds 2MB limit")
	}

	contentType := detectImageType(data)
	ext, ok := logoExtensions[contentType]
	if !ok {
		return "", apperr.Validation("logo must be png, jpeg or webp")
	}

	objectName := fmt.Sprintf("academies/%s/logo.%s", academyID, ext)

	if _, err := s.client.PutObject(ctx, s.cfg.BucketLogos, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	); err != nil {
		return "", apperr.Internal("store logo", err)
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.cfg.BucketLogos, objectName), nil
}
