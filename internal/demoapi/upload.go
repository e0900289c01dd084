package demoapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pool-market-client/internal/imagestore"

	"github.com/go-chi/chi/v5"
)

const maxUploadFiles = 20

// UploadImage handles POST /upload/image
func (s *Server) UploadImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		File   string `json:"file" validate:"required"`
		Folder string `json:"folder"`
	}
	if !decodeBody(w, r, &req) || !s.validate(w, req) {
		return
	}

	url, err := s.storeImage(r.Context(), req.File, req.Folder)
	if err != nil {
		s.respondUploadError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// UploadImages handles POST /upload/images. URLs are returned in the order
// of the uploaded files.
func (s *Server) UploadImages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Files  []string `json:"files" validate:"required,min=1,max=20"`
		Folder string   `json:"folder"`
	}
	if !decodeBody(w, r, &req) || !s.validate(w, req) {
		return
	}

	urls := make([]string, 0, min(len(req.Files), maxUploadFiles))
	for _, file := range req.Files {
		url, err := s.storeImage(r.Context(), file, req.Folder)
		if err != nil {
			s.respondUploadError(w, err)
			return
		}
		urls = append(urls, url)
	}
	respondJSON(w, http.StatusOK, map[string]any{"urls": urls})
}

// ServeImage handles GET /images/*
func (s *Server) ServeImage(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	data, contentType, err := s.images.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, imagestore.ErrNotFound) {
			respondError(w, CodeNotFound, "Image not found", http.StatusNotFound)
			return
		}
		s.respondInternal(w, err, "Failed to read image")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

func (s *Server) storeImage(ctx context.Context, file, folder string) (string, error) {
	data, contentType, err := imagestore.DecodeDataURI(file)
	if err != nil {
		return "", err
	}
	return s.images.Put(ctx, imagestore.NewKey(folder, contentType), data, contentType)
}

func (s *Server) respondUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, imagestore.ErrInvalidDataURI) {
		respondError(w, CodeBadRequest, "File must be a base64 image data URI", http.StatusBadRequest)
		return
	}
	s.respondInternal(w, err, "Failed to store image")
}
