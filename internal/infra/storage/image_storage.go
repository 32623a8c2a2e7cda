// Package storage keeps uploaded listing images in a gocloud.dev blob bucket.
// The bucket URL picks the backend: file:// for local disk, mem:// for tests and gs:// for Cloud Storage.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"ecofinds/config"
	"ecofinds/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const keyPrefix = "images/"

// ImageStorageParams holds dependencies for the image storage, injected by Fx
type ImageStorageParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

type blobImageStorage struct {
	bucket  *blob.Bucket
	baseURL string
	logger  *slog.Logger
}

// NewImageStorage opens the configured bucket and closes it when the app stops
func NewImageStorage(params ImageStorageParams) (service.ImageStorage, error) {
	cfg := params.Config.Images
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("images.bucketUrl is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image bucket %s", cfg.BucketURL)
	}

	params.Logger.Info("Image bucket opened", slog.String("bucketUrl", cfg.BucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobImageStorage(bucket, cfg.PublicBaseURL, params.Logger), nil
}

// NewBlobImageStorage serves images from bucket under baseURL. The caller owns the bucket.
func NewBlobImageStorage(bucket *blob.Bucket, baseURL string, logger *slog.Logger) service.ImageStorage {
	return &blobImageStorage{
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (s *blobImageStorage) Save(ctx context.Context, r io.Reader, contentType string) (*service.StoredImage, error) {
	key := uuid.New().String()

	w, err := s.bucket.NewWriter(ctx, keyPrefix+key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image writer")
	}

	size, copyErr := io.Copy(w, r)
	closeErr := w.Close()
	if copyErr != nil {
		return nil, errors.Wrap(copyErr, "failed to write image")
	}
	if closeErr != nil {
		return nil, errors.Wrap(closeErr, "failed to commit image")
	}

	return &service.StoredImage{
		Key:         key,
		URL:         s.URL(key),
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Open returns the caller-closed reader of a stored image.
func (s *blobImageStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if !validKey(key) {
		return nil, "", service.ErrImageNotFound
	}

	reader, err := s.bucket.NewReader(ctx, keyPrefix+key, nil)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, "", service.ErrImageNotFound
	}
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to open image %s", key)
	}

	return reader, reader.ContentType(), nil
}

func (s *blobImageStorage) Exists(ctx context.Context, key string) (bool, error) {
	if !validKey(key) {
		return false, nil
	}

	ok, err := s.bucket.Exists(ctx, keyPrefix+key)
	if err != nil {
		return false, errors.Wrapf(err, "failed to check image %s", key)
	}

	return ok, nil
}

func (s *blobImageStorage) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return nil
	}

	err := s.bucket.Delete(ctx, keyPrefix+key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to delete image %s", key)
	}

	s.logger.Debug("Image deleted", slog.String("key", key))

	return nil
}

func (s *blobImageStorage) URL(key string) string {
	return s.baseURL + "/" + key
}

// validKey accepts only the uuid keys handed out by Save, so callers cannot reach other objects.
func validKey(key string) bool {
	_, err := uuid.Parse(key)

	return err == nil
}
