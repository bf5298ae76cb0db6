package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidhub/internal/errs"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
)

// userKey is the gin context key holding the authenticated *models.User
const userKey = "vidhub.user"

// Authenticator resolves a bearer token to an active user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth rejects requests without a valid bearer token with 401 and
// stores the authenticated user in the context otherwise
func RequireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, errs.KindUnauthorized.String(), "Access token required")
			return
		}

		user, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			if e, ok := errs.As(err); ok {
				abort(c, e.Kind.HTTPStatus(), e.Kind.String(), e.Msg)
				return
			}
			logger.Log.Error().Err(err).Msg("Failed to authenticate request")
			abort(c, http.StatusInternalServerError, errs.KindInternal.String(), "Internal server error")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth stores the user of a valid bearer token in the context and
// lets every request through, anonymous when the token is missing or invalid
func OptionalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := a.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admin users with 403. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abort(c, http.StatusUnauthorized, errs.KindUnauthorized.String(), "Access token required")
			return
		}
		if !user.IsAdmin {
			abort(c, http.StatusForbidden, errs.KindForbidden.String(), "Admin access required")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, nil for anonymous requests
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SetCurrentUser stores user as the authenticated user of the request
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// abort ends the request with the API's error body
func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}
