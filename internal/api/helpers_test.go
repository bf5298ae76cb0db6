package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/analytics"
	"github.com/stwalsh4118/vidhub/internal/auth"
	"github.com/stwalsh4118/vidhub/internal/comment"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/like"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/notification"
	"github.com/stwalsh4118/vidhub/internal/playlist"
	"github.com/stwalsh4118/vidhub/internal/search"
	"github.com/stwalsh4118/vidhub/internal/testutil"
	"github.com/stwalsh4118/vidhub/internal/user"
	"github.com/stwalsh4118/vidhub/internal/video"
	"golang.org/x/crypto/bcrypt"
)

// testEnv is a router with every API route over a fresh SQLite database
type testEnv struct {
	router *gin.Engine
	db     *db.DB
	repos  *db.Repositories
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, repos := testutil.NewDB(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authService := auth.NewAuthService(repos, auth.NewPasswordHasher(bcrypt.MinCost), tokens)
	notifications := notification.NewNotificationService(repos)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	apiGroup := router.Group("/api")
	guards := NewGuards(authService)

	SetupHealthRoutes(apiGroup, database, nil)
	SetupAuthRoutes(apiGroup, authService, guards, 0)
	SetupVideoRoutes(apiGroup, video.NewVideoService(repos, notifications), guards, 0)
	SetupLikeRoutes(apiGroup, like.NewLikeService(repos, notifications), guards, 0)
	SetupCommentRoutes(apiGroup, comment.NewCommentService(repos, notifications), guards, 0)
	SetupPlaylistRoutes(apiGroup, playlist.NewPlaylistService(repos), guards, 0)
	SetupSearchRoutes(apiGroup, search.NewSearchService(repos), 0)
	SetupAnalyticsRoutes(apiGroup, analytics.NewAnalyticsService(repos), guards, 0)
	SetupUserRoutes(apiGroup, user.NewUserService(repos, notifications), guards, 0)
	SetupNotificationRoutes(apiGroup, notifications, guards, 0)

	return &testEnv{router: router, db: database, repos: repos, tokens: tokens}
}

// token issues a bearer token for u
func (e *testEnv) token(t *testing.T, u *models.User) string {
	t.Helper()

	token, err := e.tokens.Generate(u.ID)
	require.NoError(t, err)
	return token
}

// do sends a request with an optional JSON body and bearer token
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the response body into a T
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// requireError asserts the status and machine code of an error response
func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()

	require.Equal(t, status, w.Code, w.Body.String())
	resp := decode[ErrorResponse](t, w)
	require.Equal(t, code, resp.Code)
	return resp
}
