package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func echoUser(w http.ResponseWriter, r *http.Request) {
	id, _ := GetUserID(r.Context())
	w.Header().Set("X-User", id)
	w.Header().Set("X-Role", GetRole(r.Context()))
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	valid, err := IssueToken(testSecret, "user-42", "customer", "u@example.com", time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(testSecret, "user-42", "customer", "", -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueToken("other-secret", "user-42", "customer", "", time.Hour)
	require.NoError(t, err)
	noSub, err := IssueToken(testSecret, "", "customer", "", time.Hour)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Sub: "user-42"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid bearer", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"without subject", "Bearer " + noSub, http.StatusUnauthorized},
		{"without expiration", "Bearer " + noExp, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	handler := Auth(testSecret)(http.HandlerFunc(echoUser))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "user-42", rec.Header().Get("X-User"))
				assert.Equal(t, "customer", rec.Header().Get("X-Role"))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	admin, err := IssueToken(testSecret, "staff-1", RoleAdmin, "", time.Hour)
	require.NoError(t, err)
	customer, err := IssueToken(testSecret, "user-1", "customer", "", time.Hour)
	require.NoError(t, err)

	handler := Auth(testSecret)(RequireAdmin(http.HandlerFunc(echoUser)))

	for token, status := range map[string]int{admin: http.StatusOK, customer: http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, status, rec.Code)
	}
}
