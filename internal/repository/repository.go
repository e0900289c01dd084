package repository

import (
	"errors"
	"strings"
	"time"

	"pool-market-client/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when a user with the same email exists
	ErrEmailTaken = errors.New("email already registered")
)

// UserRecord is a stored user together with its password hash
type UserRecord struct {
	models.User
	PasswordHash string `json:"-"`
}

// PoolQuery narrows a pool listing. Zero values match everything.
type PoolQuery struct {
	UserID      string
	City        string
	VisibleOnly bool
	Now         time.Time
}

// Matches reports whether p passes the query
func (q PoolQuery) Matches(p *models.Pool) bool {
	if q.UserID != "" && p.UserID != q.UserID {
		return false
	}
	if q.City != "" && !strings.EqualFold(strings.TrimSpace(p.City), strings.TrimSpace(q.City)) {
		return false
	}
	if q.VisibleOnly && !IsListed(p, q.Now) {
		return false
	}
	return true
}

// IsListed reports whether p is publicly visible at now
func IsListed(p *models.Pool, now time.Time) bool {
	if !p.IsVisible {
		return false
	}
	return p.VisibleUntil == nil || p.VisibleUntil.After(now)
}
