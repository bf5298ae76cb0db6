package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/testutil"
)

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email:    "A@X.com",
		Username: "alice",
		Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decode[AuthResponse](t, w)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "a@x.com", registered.User.Email)
	assert.Equal(t, "alice", registered.User.ChannelName)
	assert.NotContains(t, w.Body.String(), "password")

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
			Email:    "a@x.com",
			Username: "alice2",
			Password: "secret1",
		})
		requireError(t, w, http.StatusConflict, "CONFLICT")
	})

	t.Run("short password is rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
			Email:    "b@x.com",
			Username: "bob",
			Password: "123",
		})
		resp := requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
		assert.Equal(t, "password must be at least 6 characters", resp.Error)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "a@x.com", Password: "nope"})
		resp := requireError(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
		assert.Equal(t, "Invalid credentials", resp.Error)
	})

	t.Run("login by email or username", func(t *testing.T) {
		for _, login := range []string{"a@x.com", "alice"} {
			w := env.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: login, Password: "secret1"})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[AuthResponse](t, w).Token)
		}
	})

	t.Run("me with the issued token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/auth/me", registered.Token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, registered.User.ID, decode[AccountResponse](t, w).ID)
	})
}

func TestAuthHandler_Me_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	resp := requireError(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	assert.Equal(t, "Access token required", resp.Error)

	w = env.do(t, http.MethodGet, "/api/auth/me", "garbage", nil)
	requireError(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestAuthHandler_UpdateProfileAndAvatar(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	testutil.CreateUser(t, env.repos, "bob")
	token := env.token(t, alice)

	name := "Alice Films"
	w := env.do(t, http.MethodPut, "/api/auth/profile", token, UpdateProfileRequest{ChannelName: &name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Alice Films", decode[AccountResponse](t, w).ChannelName)

	taken := "bob"
	w = env.do(t, http.MethodPut, "/api/auth/profile", token, UpdateProfileRequest{Username: &taken})
	requireError(t, w, http.StatusConflict, "CONFLICT")

	w = env.do(t, http.MethodPut, "/api/auth/avatar", token, UpdateAvatarRequest{Avatar: "not a url"})
	requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = env.do(t, http.MethodPut, "/api/auth/avatar", token, UpdateAvatarRequest{Avatar: "https://cdn.example.com/a.png"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://cdn.example.com/a.png", decode[AccountResponse](t, w).Avatar)
}

func TestHealthHandler_Check(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "healthy", resp.Database)
	assert.Empty(t, resp.Redis)
}
