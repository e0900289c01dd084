package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator map[string]error

func (s stubValidator) ValidateJWT(token string) (string, error) {
	if err, ok := s[token]; ok {
		return "", err
	}
	return "user-" + token, nil
}

type stubSession bool

func (s stubSession) IsAuthenticated() bool { return bool(s) }

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetUserID(r.Context())))
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	validator := stubValidator{
		"expired": fmt.Errorf("failed to parse token: %w", jwt.ErrTokenExpired),
		"bad":     errors.New("invalid token"),
	}
	handler := AuthMiddleware(validator)(echoUser())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
		wantBody   string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantCode: CodeAuthRequired},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: CodeTokenInvalid},
		{name: "expired", header: "Bearer expired", wantStatus: http.StatusUnauthorized, wantCode: CodeTokenExpired},
		{name: "invalid", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantCode: CodeTokenInvalid},
		{name: "valid", header: "Bearer ok", wantStatus: http.StatusOK, wantBody: "user-ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			} else {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAdminSecret(t *testing.T) {
	handler := AdminSecret("s3cret")(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req.Header.Set(AdminSecretHeader, "s3cret")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminSecret_EmptySecretRejectsAll(t *testing.T) {
	handler := AdminSecret("")(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AdminSecretHeader, "")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireSession(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireSession(stubSession(false))(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeAuthRequired, decodeError(t, rec).Code)

	rec = httptest.NewRecorder()
	RequireSession(stubSession(true))(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
