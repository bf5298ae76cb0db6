package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/errs"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/middleware"
	"github.com/stwalsh4118/vidhub/internal/models"
)

// DefaultRequestTimeout bounds the database work of one request when no
// timeout is configured
const DefaultRequestTimeout = 5 * time.Second

// ErrorResponse represents an error in API responses
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ListResponse is one page of items with its pagination metadata
type ListResponse[T any] struct {
	Items      []T           `json:"items"`
	Pagination db.Pagination `json:"pagination"`
}

// MessageResponse acknowledges an operation without a body
type MessageResponse struct {
	Message string `json:"message"`
}

// newListResponse converts a page of models with convert
func newListResponse[M any, T any](page *db.Paged[M], convert func(*M) T) ListResponse[T] {
	return ListResponse[T]{
		Items:      slice.Map(page.Items, func(_ int, src *M) T { return convert(src) }),
		Pagination: page.Pagination,
	}
}

// respondError writes err as an API error. Typed errors keep their status
// and message; anything else is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	if e, ok := errs.As(err); ok {
		c.JSON(e.Kind.HTTPStatus(), ErrorResponse{Error: e.Msg, Code: e.Kind.String()})
		return
	}

	logger.Log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "Internal server error",
		Code:  errs.KindInternal.String(),
	})
}

// respondValidation writes a 400 with msg
func respondValidation(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: errs.KindValidation.String()})
}

// requestContext derives the context for the request's service calls
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// uuidParam parses the path parameter name as a UUID, writing a 400 when it is not one
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondValidation(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pageQuery reads page and limit from the query string
func pageQuery(c *gin.Context) db.Page {
	return db.ParsePage(c.Query("page"), c.Query("limit"))
}

// intQuery reads an optional integer query parameter, writing a 400 when it is malformed
func intQuery(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondValidation(c, name+" must be an integer")
		return nil, false
	}
	return &n, true
}

// viewerID returns the id of the authenticated user, uuid.Nil when anonymous
func viewerID(c *gin.Context) uuid.UUID {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return uuid.Nil
}

// mustUser returns the authenticated user. Routes using it sit behind RequireAuth.
func mustUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}
