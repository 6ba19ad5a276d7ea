package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func TestClientDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), &staticTokens{token: "abc123"})

	resp, err := client.Do(context.Background(), http.MethodGet, "/rest/wifiStatus", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestClientDo_NoTokenMeansNoHeader(t *testing.T) {
	var gotAuth string
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hadAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), &staticTokens{})

	resp, err := client.Do(context.Background(), http.MethodGet, "/rest/features", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.False(t, hadAuth)
	assert.Empty(t, gotAuth)
}

func TestClientDo_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", srv.Client(), &staticTokens{})

	resp, err := client.Do(context.Background(), http.MethodGet, "/rest/features", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "/rest/features", gotPath)
}

func TestVerifyAuthorization_ReturnsStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"accepted", http.StatusOK},
		{"rejected", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, VerifyAuthorizationEndpoint, r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, srv.Client(), &staticTokens{token: "tok"})

			status, err := client.VerifyAuthorization(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.status, status)
		})
	}
}
