package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pool-market-client/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	tok string
}

func (m *memTokens) Get() string    { return m.tok }
func (m *memTokens) Set(tok string) { m.tok = tok }

func newTestClient(t *testing.T, mux *http.ServeMux, tokens *memTokens) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(Options{
		BaseURL:     srv.URL + "/",
		AdminSecret: "admin-secret",
		Tokens:      tokens,
		Logger:      zerolog.Nop(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_StoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@bazeni.ba", req.Email)
		writeJSON(w, http.StatusOK, map[string]any{
			"accessToken": "tok-1",
			"user":        map[string]any{"id": "u1", "email": req.Email, "role": "host"},
		})
	})

	tokens := &memTokens{}
	c := newTestClient(t, mux, tokens)

	resp, err := c.Login(context.Background(), models.LoginRequest{Email: "ana@bazeni.ba", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, models.RoleHost, resp.User.Role)
	assert.Equal(t, "tok-1", tokens.tok)
}

func TestDo_AttachesBearer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pools", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))
		writeJSON(w, http.StatusOK, map[string]any{"pools": []map[string]any{{"id": "p1", "title": "Vila Sunce"}}})
	})

	c := newTestClient(t, mux, &memTokens{tok: "tok-1"})

	pools, err := c.ListPools(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, pools, 1)
	assert.Equal(t, "Vila Sunce", pools[0].Title)
}

func TestDo_NoBearerWhenAnonymous(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pool", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "p1", r.URL.Query().Get("id"))
		writeJSON(w, http.StatusOK, map[string]any{"pool": map[string]any{"id": "p1"}})
	})

	c := newTestClient(t, mux, &memTokens{})

	pool, err := c.GetPool(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", pool.ID)
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		kind    ErrorKind
		message string
		code    string
	}{
		{
			name:    "generic server error",
			status:  http.StatusInternalServerError,
			body:    map[string]any{},
			kind:    KindServer,
			message: MsgServer,
		},
		{
			name:    "details take precedence",
			status:  http.StatusConflict,
			body:    map[string]any{"code": CodeEmailTaken, "message": "conflict", "details": "Email"},
			kind:    KindDomain,
			message: "Email",
			code:    CodeEmailTaken,
		},
		{
			name:    "message when no details",
			status:  http.StatusBadRequest,
			body:    map[string]any{"message": "title is required"},
			kind:    KindDomain,
			message: "title is required",
		},
		{
			name:    "non-string details ignored",
			status:  http.StatusBadRequest,
			body:    map[string]any{"details": map[string]string{"title": "required"}},
			kind:    KindServer,
			message: MsgServer,
		},
		{
			name:    "not an error range",
			status:  http.StatusNotModified,
			body:    nil,
			kind:    KindUnknown,
			message: "unexpected status 304",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /pools", func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})
			c := newTestClient(t, mux, &memTokens{})

			_, err := c.ListPools(context.Background(), "")
			require.Error(t, err)

			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Options{BaseURL: url, Tokens: &memTokens{}, Logger: zerolog.Nop()})

	_, err := c.ListPools(context.Background(), "")
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.Equal(t, MsgNetwork, apiErr.Error())
}

func TestDecodeError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pools", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"pools": "nope"`))
	})
	c := newTestClient(t, mux, &memTokens{})

	_, err := c.ListPools(context.Background(), "")
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindUnknown, apiErr.Kind)
	assert.NotEmpty(t, apiErr.Message)
}

func TestUnauthorized_ClearsToken(t *testing.T) {
	for _, code := range []string{CodeTokenExpired, CodeTokenInvalid, CodeAuthRequired} {
		t.Run(code, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("DELETE /pools/{id}", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"code": code, "message": "unauthorized"})
			})
			tokens := &memTokens{tok: "stale"}
			c := newTestClient(t, mux, tokens)

			err := c.DeletePool(context.Background(), "p1")
			require.Error(t, err)
			assert.Empty(t, tokens.tok)
		})
	}
}

func TestUnauthorized_KeepsTokenForOtherCodes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /pools/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"code": "INVALID_CREDENTIALS"})
	})
	tokens := &memTokens{tok: "still-good"}
	c := newTestClient(t, mux, tokens)

	require.Error(t, c.DeletePool(context.Background(), "p1"))
	assert.Equal(t, "still-good", tokens.tok)
}

func TestAdmin_UsesSecretHeader(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /pools/{id}/visibility", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "admin-secret", r.Header.Get(AdminSecretHeader))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "p1", r.PathValue("id"))

		var req models.VisibilityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, map[string]any{"pool": map[string]any{"id": "p1", "isVisible": req.IsVisible}})
	})
	mux.HandleFunc("GET /admin/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "admin-secret", r.Header.Get(AdminSecretHeader))
		writeJSON(w, http.StatusOK, map[string]any{"users": []map[string]any{{"id": "u1"}, {"id": "u2"}}})
	})

	c := newTestClient(t, mux, &memTokens{tok: "tok-1"})

	pool, err := c.SetPoolVisibility(context.Background(), "p1", models.VisibilityRequest{IsVisible: true})
	require.NoError(t, err)
	assert.True(t, pool.IsVisible)

	users, err := c.AdminListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateUser_UploadsAvatar(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload/image", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, FolderAvatars, body["folder"])
		assert.True(t, IsInlineImage(body["file"]))
		writeJSON(w, http.StatusOK, map[string]string{"url": "https://cdn.test/avatars/a.png"})
	})
	mux.HandleFunc("PUT /user", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://cdn.test/avatars/a.png", body["avatarUrl"])
		assert.NotContains(t, body, "avatarBase64")
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": "u1", "avatarUrl": body["avatarUrl"]}})
	})

	c := newTestClient(t, mux, &memTokens{tok: "tok-1"})

	user, err := c.UpdateUser(context.Background(), models.UpdateUserRequest{
		FirstName:    "Ana",
		LastName:     "Kovač",
		Email:        "ana@bazeni.ba",
		MobileNumber: "+38761000000",
		AvatarBase64: "data:image/png;base64,iVBORw0KGgo=",
	})
	require.NoError(t, err)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, "https://cdn.test/avatars/a.png", *user.AvatarURL)
}
