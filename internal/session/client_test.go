package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"handmade-market/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/auth/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "maya@example.com", body["email"])
			assert.Equal(t, "pw", body["password"])

			_, _ = w.Write([]byte(`{"token":"tok","user":{"id":"u1","name":"Maya","email":"maya@example.com","role":"artisan"}}`))
		}))
		defer srv.Close()

		resp, err := NewClient(srv.URL+"/api/", nil).Login(ctx, "maya@example.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, "tok", resp.Token)
		assert.Equal(t, user.Seller, resp.User.Role)
	})

	t.Run("Rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid email or password"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, nil).Login(ctx, "x@example.com", "bad")
		assert.ErrorIs(t, err, ErrUnauthorized)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "invalid email or password", se.Message)
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, nil).Login(ctx, "x@example.com", "pw")
		assert.ErrorIs(t, err, ErrAuthFailed)
		assert.NotErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(url, nil).Login(ctx, "x@example.com", "pw")
		assert.ErrorIs(t, err, ErrAuthFailed)
	})
}

func TestClient_UpdateProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/profile", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"user":{"id":"u1","name":"New"}}`))
	}))
	defer srv.Close()

	name := "New"
	resp, err := NewClient(srv.URL, nil).UpdateProfile(context.Background(), "tok", user.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Empty(t, resp.Token)
	assert.Equal(t, "New", resp.User.Name)
}
