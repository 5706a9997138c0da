package storage

import (
	"context"
	"net/url"
	"time"

	"qutlas/internal/config"
	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultPresignExpiry = 15 * time.Minute

type objectAPI interface {
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// MinIODesignStorage checks uploaded design objects in MinIO/S3-compatible
// storage. Uploads happen elsewhere; this side only reads.
type MinIODesignStorage struct {
	client objectAPI
}

var _ interfaces.IDesignStorage = (*MinIODesignStorage)(nil)

func NewMinIODesignStorage(cfg config.StorageConfig) (*MinIODesignStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(err, "create minio client")
	}
	return &MinIODesignStorage{client: client}, nil
}

// Exists reports whether the design object is present. A missing bucket or
// key is (false, nil); any other failure is unavailable data.
func (s *MinIODesignStorage) Exists(ctx context.Context, loc entities.DesignLocation) (bool, error) {
	_, err := s.client.StatObject(ctx, loc.Bucket, loc.Key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return false, nil
	}
	return false, errs.Mark(errs.Wrapf(err, "stat design %s", loc), errs.ErrDataUnavailable)
}

func (s *MinIODesignStorage) PresignDownload(ctx context.Context, loc entities.DesignLocation, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	u, err := s.client.PresignedGetObject(ctx, loc.Bucket, loc.Key, expiry, url.Values{})
	if err != nil {
		return "", errs.Mark(errs.Wrapf(err, "presign design %s", loc), errs.ErrDataUnavailable)
	}
	return u.String(), nil
}
