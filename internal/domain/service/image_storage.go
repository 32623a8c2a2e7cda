// Package service declares the ports to infrastructure services used by the use cases.
package service

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// ErrImageNotFound is returned when no object is stored under the requested key.
var ErrImageNotFound = errors.New("image not found")

// StoredImage is an image persisted in durable storage.
type StoredImage struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ImageStorage keeps uploaded listing images durably, so a product's image
// survives restarts instead of living only as a transient in-session reference.
type ImageStorage interface {
	// Save stores the image read from r and returns its key and public URL.
	Save(ctx context.Context, r io.Reader, contentType string) (*StoredImage, error)

	// Open returns a reader over the stored image and its content type.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the image. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key.
	URL(key string) string
}
