package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/search"
)

// SearchResponse holds one page per searched result type. Types that were
// not searched are omitted.
type SearchResponse struct {
	Query     string                           `json:"query"`
	Type      string                           `json:"type"`
	Videos    *ListResponse[*VideoResponse]    `json:"videos,omitempty"`
	Users     *ListResponse[*UserSummary]      `json:"users,omitempty"`
	Playlists *ListResponse[*PlaylistResponse] `json:"playlists,omitempty"`
	Total     int64                            `json:"total"`
}

// SuggestionsResponse lists search suggestions
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// TrendingTagsResponse lists the most used recent tags
type TrendingTagsResponse struct {
	Tags []search.TagCount `json:"tags"`
}

// SearchHandler handles search API requests
type SearchHandler struct {
	searchService *search.SearchService
	timeout       time.Duration
}

// NewSearchHandler creates a new search handler instance
func NewSearchHandler(searchService *search.SearchService, timeout time.Duration) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		timeout:       timeout,
	}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	resultType := c.DefaultQuery("type", search.TypeAll)

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	res, err := h.searchService.Search(ctx, c.Query("q"), resultType, c.Query("sortBy"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := SearchResponse{
		Query: strings.TrimSpace(c.Query("q")),
		Type:  resultType,
		Total: res.Total,
	}
	if res.Videos != nil {
		resp.Videos = listPtr(res.Videos, toVideoResponse)
	}
	if res.Users != nil {
		resp.Users = listPtr(res.Users, toUserSummary)
	}
	if res.Playlists != nil {
		resp.Playlists = listPtr(res.Playlists, toPlaylistResponse)
	}

	c.JSON(http.StatusOK, resp)
}

// Suggestions handles GET /api/search/suggestions
func (h *SearchHandler) Suggestions(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	suggestions, err := h.searchService.Suggestions(ctx, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// TrendingTags handles GET /api/search/trending
func (h *SearchHandler) TrendingTags(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	tags, err := h.searchService.TrendingTags(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TrendingTagsResponse{Tags: tags})
}

// Advanced handles GET /api/search/advanced
func (h *SearchHandler) Advanced(c *gin.Context) {
	minDuration, ok := intQuery(c, "minDuration")
	if !ok {
		return
	}
	maxDuration, ok := intQuery(c, "maxDuration")
	if !ok {
		return
	}

	in := search.AdvancedInput{
		Query:       c.Query("q"),
		Category:    c.Query("category"),
		MinDuration: minDuration,
		MaxDuration: maxDuration,
		UploadDate:  c.Query("uploadDate"),
		SortBy:      c.Query("sortBy"),
	}
	if raw := c.Query("tags"); raw != "" {
		in.Tags = slice.Map(strings.Split(raw, ","), func(_ int, tag string) string {
			return strings.TrimSpace(tag)
		})
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	page, err := h.searchService.Advanced(ctx, in, pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(page, toVideoResponse))
}

func listPtr[M any, T any](page *db.Paged[M], convert func(*M) T) *ListResponse[T] {
	resp := newListResponse(page, convert)
	return &resp
}

// SetupSearchRoutes registers search routes
func SetupSearchRoutes(apiGroup *gin.RouterGroup, searchService *search.SearchService, timeout time.Duration) {
	handler := NewSearchHandler(searchService, timeout)

	group := apiGroup.Group("/search")
	group.GET("", handler.Search)
	group.GET("/suggestions", handler.Suggestions)
	group.GET("/trending", handler.TrendingTags)
	group.GET("/advanced", handler.Advanced)
}
