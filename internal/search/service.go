// Package search implements catalog search across videos, channels and playlists.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/logger"
	"github.com/stwalsh4118/vidhub/internal/models"
	"golang.org/x/sync/errgroup"
)

// Result types accepted by Search
const (
	TypeAll       = "all"
	TypeVideos    = "videos"
	TypeUsers     = "users"
	TypePlaylists = "playlists"
)

const (
	// MaxSuggestions caps the number of suggestions returned
	MaxSuggestions = 10

	// MaxTrendingTags caps the number of trending tags returned
	MaxTrendingTags = 10

	trendingWindow = 7 * 24 * time.Hour
)

// sortColumns maps search sort keys to video columns. Relevance ranks by views.
var sortColumns = map[string]string{
	"relevance": "views",
	"views":     "views",
	"date":      "created_at",
	"likes":     "likes",
}

// Results holds one page per result type. Types not searched are nil.
type Results struct {
	Videos    *db.Paged[models.Video]
	Users     *db.Paged[models.User]
	Playlists *db.Paged[models.Playlist]
	Total     int64
}

// TagCount is a tag and the number of recent videos carrying it
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// AdvancedInput holds the filters of a video-only search
type AdvancedInput struct {
	Query       string
	Category    string
	MinDuration *int64
	MaxDuration *int64
	UploadDate  string
	Tags        []string
	SortBy      string
}

// SearchService handles search queries
type SearchService struct {
	repos   *db.Repositories
	nowFunc func() time.Time
}

// NewSearchService creates a new search service instance
func NewSearchService(repos *db.Repositories) *SearchService {
	return &SearchService{
		repos:   repos,
		nowFunc: time.Now,
	}
}

// Search matches q against videos (title, description, tags), active users
// (username, channel name) and public playlists (name, description). Each
// requested type is paginated independently and queried concurrently.
func (s *SearchService) Search(ctx context.Context, q, resultType, sortBy string, page db.Page) (*Results, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrQueryRequired
	}
	if resultType == "" {
		resultType = TypeAll
	}
	switch resultType {
	case TypeAll, TypeVideos, TypeUsers, TypePlaylists:
	default:
		return nil, ErrInvalidType
	}
	column, err := sortColumn(sortBy)
	if err != nil {
		return nil, err
	}

	res := &Results{}
	g, gctx := errgroup.WithContext(ctx)

	if resultType == TypeAll || resultType == TypeVideos {
		g.Go(func() error {
			filter := db.VideoFilter{PublicOnly: true, Query: q, QueryTags: true, SortColumn: column}
			videos, total, err := s.repos.Videos.List(gctx, filter, page)
			if err != nil {
				return err
			}
			res.Videos = db.NewPaged(videos, page, total)
			return nil
		})
	}
	if resultType == TypeAll || resultType == TypeUsers {
		g.Go(func() error {
			users, total, err := s.repos.Users.Search(gctx, q, page)
			if err != nil {
				return err
			}
			res.Users = db.NewPaged(users, page, total)
			return nil
		})
	}
	if resultType == TypeAll || resultType == TypePlaylists {
		g.Go(func() error {
			playlists, total, err := s.repos.Playlists.Search(gctx, q, page)
			if err != nil {
				return err
			}
			res.Playlists = db.NewPaged(playlists, page, total)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Log.Error().
			Err(err).
			Str("query", q).
			Str("type", resultType).
			Msg("Search failed")
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	if res.Videos != nil {
		res.Total += res.Videos.Pagination.Total
	}
	if res.Users != nil {
		res.Total += res.Users.Pagination.Total
	}
	if res.Playlists != nil {
		res.Total += res.Playlists.Pagination.Total
	}
	return res, nil
}

// Suggestions returns up to MaxSuggestions distinct video titles and channel
// names matching q, prefix matches first
func (s *SearchService) Suggestions(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}

	var titles, names []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		titles, err = s.repos.Videos.TitleSuggestions(gctx, q, MaxSuggestions)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = s.repos.Users.ChannelNameSuggestions(gctx, q, MaxSuggestions)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Log.Error().Err(err).Str("query", q).Msg("Failed to load suggestions")
		return nil, fmt.Errorf("failed to load suggestions: %w", err)
	}

	seen := make(map[string]bool, MaxSuggestions)
	out := make([]string, 0, MaxSuggestions)
	for _, candidate := range append(titles, names...) {
		key := strings.ToLower(candidate)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, candidate)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out, nil
}

// TrendingTags returns the most used tags among public videos of the last
// seven days, most frequent first
func (s *SearchService) TrendingTags(ctx context.Context) ([]TagCount, error) {
	since := s.nowFunc().UTC().Add(-trendingWindow)
	sets, err := s.repos.Videos.TagsSince(ctx, since)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to load trending tags")
		return nil, fmt.Errorf("failed to load trending tags: %w", err)
	}

	counts := make(map[string]int)
	for _, tags := range sets {
		for _, tag := range tags {
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > MaxTrendingTags {
		out = out[:MaxTrendingTags]
	}
	return out, nil
}

// Advanced runs a video-only search with structured filters
func (s *SearchService) Advanced(ctx context.Context, in AdvancedInput, page db.Page) (*db.Paged[models.Video], error) {
	column, err := sortColumn(in.SortBy)
	if err != nil {
		return nil, err
	}
	if (in.MinDuration != nil && *in.MinDuration < 0) || (in.MaxDuration != nil && *in.MaxDuration < 0) {
		return nil, ErrInvalidDuration
	}
	if in.MinDuration != nil && in.MaxDuration != nil && *in.MinDuration > *in.MaxDuration {
		return nil, ErrInvalidDuration
	}

	filter := db.VideoFilter{
		PublicOnly:  true,
		Query:       strings.TrimSpace(in.Query),
		QueryTags:   true,
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
		MinDuration: in.MinDuration,
		MaxDuration: in.MaxDuration,
		Tags:        models.NormalizeTags(in.Tags),
		SortColumn:  column,
	}
	if in.UploadDate != "" {
		since, err := s.uploadedSince(in.UploadDate)
		if err != nil {
			return nil, err
		}
		filter.CreatedAfter = &since
	}

	videos, total, err := s.repos.Videos.List(ctx, filter, page)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Advanced search failed")
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	return db.NewPaged(videos, page, total), nil
}

// uploadedSince converts an upload window name into its start time
func (s *SearchService) uploadedSince(window string) (time.Time, error) {
	now := s.nowFunc().UTC()
	switch window {
	case "hour":
		return now.Add(-time.Hour), nil
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, ErrInvalidUploadDate
	}
}

func sortColumn(sortBy string) (string, error) {
	if sortBy == "" {
		sortBy = "relevance"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return "", ErrInvalidSort
	}
	return column, nil
}
