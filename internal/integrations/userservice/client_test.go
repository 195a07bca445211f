package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/u-1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"u-1","email":"anna@example.com","name":"Anna"}`))
		case "/internal/users/u-404":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetUser(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	user, err := c.GetUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)

	_, err = c.GetUser(context.Background(), "u-404")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = c.GetUser(context.Background(), "u-500")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetUserWithGracefulDegradation(t *testing.T) {
	srv := newServer(t)
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	user, err := c.GetUserWithGracefulDegradation(context.Background(), "u-500")
	assert.ErrorIs(t, err, ErrServiceDegraded)
	require.NotNil(t, user)
	assert.Equal(t, "u-500", user.ID)

	_, err = c.GetUserWithGracefulDegradation(context.Background(), "u-404")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
