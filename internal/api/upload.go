package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// inlineImagePrefix marks image data embedded as a data URI
const inlineImagePrefix = "data:image/"

// Upload folders.
const (
	FolderPools   = "pools"
	FolderAvatars = "avatars"
)

// IsInlineImage reports whether s is inline image data rather than a hosted URL
func IsInlineImage(s string) bool {
	return strings.HasPrefix(s, inlineImagePrefix)
}

// ExtractInline returns the inline entries of images in their original order
func ExtractInline(images []string) []string {
	var inline []string
	for _, img := range images {
		if IsInlineImage(img) {
			inline = append(inline, img)
		}
	}
	return inline
}

// MergeUploaded replaces every inline entry of original with the next unused
// URL from uploaded. Hosted entries are kept in place.
func MergeUploaded(original, uploaded []string) ([]string, error) {
	merged := make([]string, 0, len(original))
	next := 0
	for _, img := range original {
		if !IsInlineImage(img) {
			merged = append(merged, img)
			continue
		}
		if next >= len(uploaded) {
			return nil, fmt.Errorf("upload returned %d urls for more inline images", len(uploaded))
		}
		merged = append(merged, uploaded[next])
		next++
	}
	if next != len(uploaded) {
		return nil, fmt.Errorf("upload returned %d urls for %d inline images", len(uploaded), next)
	}
	return merged, nil
}

// resolveImages uploads the inline entries of images in one batch and
// returns the list with hosted URLs substituted in order
func (c *Client) resolveImages(ctx context.Context, images []string, folder string) ([]string, error) {
	inline := ExtractInline(images)
	if len(inline) == 0 {
		return append([]string(nil), images...), nil
	}

	urls, err := c.UploadImages(ctx, inline, folder)
	if err != nil {
		return nil, err
	}

	merged, err := MergeUploaded(images, urls)
	if err != nil {
		return nil, unknownError(err)
	}
	return merged, nil
}

// UploadImage uploads a single inline image and returns its hosted URL
func (c *Client) UploadImage(ctx context.Context, file, folder string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/upload/image",
		body: map[string]string{
			"file":   file,
			"folder": folder,
		},
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// UploadImages uploads inline images in one call. The returned URLs are in
// the same order as files.
func (c *Client) UploadImages(ctx context.Context, files []string, folder string) ([]string, error) {
	var resp struct {
		URLs []string `json:"urls"`
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/upload/images",
		body: map[string]any{
			"files":  files,
			"folder": folder,
		},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.URLs, nil
}
