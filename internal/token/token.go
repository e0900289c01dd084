package token

import (
	"pool-market-client/internal/storage"
)

// Holder persists the bearer credential of the current session
type Holder struct {
	storage *storage.Adapter
}

// NewHolder creates a token holder backed by the given storage adapter
func NewHolder(s *storage.Adapter) *Holder {
	return &Holder{storage: s}
}

// Get returns the stored access token, or "" when there is none
func (h *Holder) Get() string {
	var tok string
	if !h.storage.Get(storage.AccessTokenKey, &tok) {
		return ""
	}
	return tok
}

// Set stores tok. An empty token removes the stored credential.
func (h *Holder) Set(tok string) {
	if tok == "" {
		h.storage.Remove(storage.AccessTokenKey)
		return
	}
	h.storage.Set(storage.AccessTokenKey, tok)
}

// Clear removes the stored credential
func (h *Holder) Clear() {
	h.Set("")
}
