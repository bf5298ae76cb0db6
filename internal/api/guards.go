package api

import (
	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidhub/internal/middleware"
)

// Guards holds the authentication middleware shared by route groups
type Guards struct {
	Auth     gin.HandlerFunc
	Optional gin.HandlerFunc
	Admin    gin.HandlerFunc
}

// NewGuards builds the route guards backed by a
func NewGuards(a middleware.Authenticator) Guards {
	return Guards{
		Auth:     middleware.RequireAuth(a),
		Optional: middleware.OptionalAuth(a),
		Admin:    middleware.RequireAdmin(),
	}
}
