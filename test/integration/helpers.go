//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/config"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/server"
	"github.com/stwalsh4118/vidhub/internal/testutil"
)

// testConfig returns a configuration suitable for in-process servers
func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{RequestTimeout: 5 * time.Second},
		Logging: config.LoggingConfig{Level: "error"},
		Auth: config.AuthConfig{
			JWTSecret:    "integration-secret",
			TokenTTL:     time.Hour,
			BcryptRounds: 4,
		},
		CORS:      config.CORSConfig{Origins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{WindowMS: 60_000, MaxRequests: 1000},
		Upload:    config.UploadConfig{MaxFileSize: 1 << 20},
	}
}

// setupServer builds the full router over a fresh migrated SQLite database
func setupServer(t *testing.T, cfg *config.Config) (*gin.Engine, *db.Repositories) {
	t.Helper()

	database, repos := testutil.NewDB(t)
	srv, err := server.New(cfg, database)
	require.NoError(t, err, "Failed to create server")
	return srv.Router(), repos
}

// doJSON sends a request through router and returns the recorder
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.RemoteAddr = "192.0.2.1:1234"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeJSON unmarshals a response body into a T
func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// register creates an account through the API and returns its token and id
func register(t *testing.T, router *gin.Engine, email, username string) (string, string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"username": username,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}
