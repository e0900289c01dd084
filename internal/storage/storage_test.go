package storage

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenBackend rejects every write, like a browser with storage disabled.
type brokenBackend struct {
	sets int
}

func (b *brokenBackend) Get(string) (string, error) { return "", ErrNotFound }
func (b *brokenBackend) Set(string, string) error {
	b.sets++
	return errors.New("quota exceeded")
}
func (b *brokenBackend) Delete(string) error { return nil }
func (b *brokenBackend) Close() error        { return nil }

func newTestAdapter(t *testing.T) (*Adapter, *BadgerBackend) {
	t.Helper()
	backend, err := NewBadgerBackend("")
	require.NoError(t, err)
	a := New(backend, zerolog.Nop())
	t.Cleanup(func() { _ = a.Close() })
	return a, backend
}

type entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestAdapter_RoundTripStructured(t *testing.T) {
	a, _ := newTestAdapter(t)
	require.True(t, a.Supported())

	in := []entry{{ID: "1", Title: "Vila Sunce"}, {ID: "2", Title: "Plavi Raj"}}
	require.True(t, a.Set(FavoritesKey, in))

	var out []entry
	require.True(t, a.Get(FavoritesKey, &out))
	assert.Equal(t, in, out)
}

func TestAdapter_StringValue(t *testing.T) {
	a, _ := newTestAdapter(t)

	require.True(t, a.Set(AccessTokenKey, "abc"))

	var out string
	require.True(t, a.Get(AccessTokenKey, &out))
	assert.Equal(t, "abc", out)
}

func TestAdapter_RawFallback(t *testing.T) {
	a, backend := newTestAdapter(t)

	// written by something that does not JSON-encode
	require.NoError(t, backend.Set(AccessTokenKey, "plain-token"))

	var out string
	require.True(t, a.Get(AccessTokenKey, &out))
	assert.Equal(t, "plain-token", out)

	var structured []entry
	assert.False(t, a.Get(AccessTokenKey, &structured))
}

func TestAdapter_Missing(t *testing.T) {
	a, _ := newTestAdapter(t)

	var out string
	assert.False(t, a.Get(UserKey, &out))
	assert.Empty(t, out)
}

func TestAdapter_Remove(t *testing.T) {
	a, _ := newTestAdapter(t)

	require.True(t, a.Set(UserKey, entry{ID: "u1"}))
	a.Remove(UserKey)

	var out entry
	assert.False(t, a.Get(UserKey, &out))

	// removing twice is harmless
	a.Remove(UserKey)
}

func TestAdapter_ProbeLeavesNoKey(t *testing.T) {
	_, backend := newTestAdapter(t)

	_, err := backend.Get(probeKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdapter_Unsupported(t *testing.T) {
	backend := &brokenBackend{}
	a := New(backend, zerolog.Nop())

	assert.False(t, a.Supported())
	assert.Equal(t, 1, backend.sets)

	assert.False(t, a.Set(UserKey, entry{ID: "u1"}))
	assert.Equal(t, 1, backend.sets, "writes after a failed probe are skipped")

	var out entry
	assert.False(t, a.Get(UserKey, &out))
	a.Remove(UserKey)
}

func TestAdapter_NilBackend(t *testing.T) {
	a := New(nil, zerolog.Nop())
	assert.False(t, a.Supported())
	assert.NoError(t, a.Close())
}
