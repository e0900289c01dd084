package token

import (
	"testing"

	"pool-market-client/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHolder(t *testing.T) *Holder {
	t.Helper()
	backend, err := storage.NewBadgerBackend("")
	require.NoError(t, err)
	s := storage.New(backend, zerolog.Nop())
	t.Cleanup(func() { _ = s.Close() })
	return NewHolder(s)
}

func TestHolder_SetGet(t *testing.T) {
	h := newHolder(t)

	assert.Empty(t, h.Get())

	h.Set("abc")
	assert.Equal(t, "abc", h.Get())

	h.Set("def")
	assert.Equal(t, "def", h.Get())
}

func TestHolder_EmptyRemoves(t *testing.T) {
	h := newHolder(t)

	h.Set("abc")
	h.Set("")
	assert.Empty(t, h.Get())

	h.Set("abc")
	h.Clear()
	assert.Empty(t, h.Get())
}
