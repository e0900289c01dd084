// Package imagestore keeps images uploaded through the demo API.
package imagestore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for unknown keys
var ErrNotFound = errors.New("image not found")

// ErrInvalidDataURI is returned when an upload is not a base64 image data URI
var ErrInvalidDataURI = errors.New("invalid image data uri")

// Store persists image bytes and returns the public URL of the stored object
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, string, error)
}

// DecodeDataURI parses "data:image/<type>;base64,<payload>"
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrInvalidDataURI
	}
	contentType, encoding, _ := strings.Cut(meta, ";")
	if !strings.HasPrefix(contentType, "image/") || encoding != "base64" {
		return nil, "", ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if len(data) == 0 {
		return nil, "", ErrInvalidDataURI
	}
	return data, contentType, nil
}

// NewKey builds an object key "<folder>/<uuid><ext>" for the content type
func NewKey(folder, contentType string) string {
	ext := ".img"
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	}

	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "misc"
	}
	return folder + "/" + uuid.New().String() + ext
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
