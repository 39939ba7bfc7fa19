// Package attachments stores post images: a local upload folder by default, or
// an S3 compatible bucket (Cloudflare R2).
package attachments

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("attachment not found")
	ErrInvalidName  = errors.New("invalid attachment name")
	ErrNotAnImage   = errors.New("attachment is not a supported image")
	ErrTooLarge     = errors.New("attachment exceeds size limit")
	ErrEmptyContent = errors.New("attachment is empty")
)

// MaxImageSize is the upload limit for a post image (10MB).
const MaxImageSize = 10 * 1024 * 1024

var imageTypes = []string{
	"image/jpeg", "image/png", "image/webp", "image/gif", "image/heic",
}

// Storage is the upload folder abstraction used by controllers and serialization.
type Storage interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	ReadAttachment(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

// NewFileName generates a unique stored name that keeps the original extension.
func NewFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}

// DetectImage sniffs data and returns its MIME type if it is an accepted image.
func DetectImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyContent
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	for _, allowed := range imageTypes {
		if mtype.Is(allowed) {
			return mtype.String(), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotAnImage, mtype.String())
}

// cleanName rejects anything that is not a bare file name.
func cleanName(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}
