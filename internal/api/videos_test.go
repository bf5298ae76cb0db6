package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/testutil"
)

func TestVideoHandler_CreateVideo(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	token := env.token(t, alice)

	t.Run("creates and counts the upload", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/videos", token, CreateVideoRequest{
			Title:     "Demo",
			Thumbnail: "https://cdn.example.com/demo.jpg",
			VideoURL:  "https://cdn.example.com/demo.mp4",
			Category:  "education",
			Duration:  3725,
			Tags:      []string{"Go", "go", "tutorial"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := decode[VideoResponse](t, w)
		assert.Equal(t, "Demo", resp.Title)
		assert.Equal(t, models.VisibilityPublic, resp.Visibility)
		assert.Equal(t, []string{"go", "tutorial"}, resp.Tags)
		assert.Equal(t, "01:02:05", resp.DurationText)
		require.NotNil(t, resp.User)
		assert.Equal(t, "alice", resp.User.Username)

		assert.Equal(t, int64(1), testutil.ReloadUser(t, env.repos, alice.ID).VideoCount)
	})

	t.Run("missing title", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/videos", token, CreateVideoRequest{
			Thumbnail: "t.jpg",
			VideoURL:  "v.mp4",
			Category:  "education",
		})
		resp := requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
		assert.Equal(t, "title is required", resp.Error)
	})

	t.Run("unknown category", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/videos", token, CreateVideoRequest{
			Title:     "Bad",
			Thumbnail: "t.jpg",
			VideoURL:  "v.mp4",
			Category:  "cooking-shows",
		})
		requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("anonymous upload", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/videos", "", CreateVideoRequest{Title: "x"})
		requireError(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	})
}

func TestVideoHandler_ListVideos(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	testutil.CreateVideo(t, env.repos, alice, "First", testutil.WithViews(5))
	testutil.CreateVideo(t, env.repos, alice, "Second", testutil.WithViews(50), testutil.WithCategory("music"))
	testutil.CreateVideo(t, env.repos, alice, "Hidden", testutil.WithVisibility(models.VisibilityPrivate))

	w := env.do(t, http.MethodGet, "/api/videos?sortBy=views&sortOrder=desc", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[ListResponse[*VideoResponse]](t, w)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Second", resp.Items[0].Title)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.False(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrev)

	w = env.do(t, http.MethodGet, "/api/videos?category=music", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[ListResponse[*VideoResponse]](t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Second", resp.Items[0].Title)

	w = env.do(t, http.MethodGet, "/api/videos?page=2&limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[ListResponse[*VideoResponse]](t, w)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNext)
	assert.True(t, resp.Pagination.HasPrev)

	w = env.do(t, http.MethodGet, "/api/videos?sortBy=password", "", nil)
	requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestVideoHandler_ListByUser(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	testutil.CreateVideo(t, env.repos, alice, "Public")
	testutil.CreateVideo(t, env.repos, alice, "Private", testutil.WithVisibility(models.VisibilityPrivate))
	path := "/api/videos/user/" + alice.ID.String()

	w := env.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[ListResponse[*VideoResponse]](t, w).Items, 1)

	w = env.do(t, http.MethodGet, path, env.token(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[ListResponse[*VideoResponse]](t, w).Items, 2)
}

func TestVideoHandler_GetVideo(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	bob := testutil.CreateUser(t, env.repos, "bob")
	public := testutil.CreateVideo(t, env.repos, alice, "Public")
	private := testutil.CreateVideo(t, env.repos, alice, "Private", testutil.WithVisibility(models.VisibilityPrivate))

	t.Run("counts a view for other viewers", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/videos/"+public.ID.String(), env.token(t, bob), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[VideoDetailResponse](t, w)
		assert.Equal(t, int64(1), resp.Views)
		assert.Equal(t, models.LikeStateNone, resp.UserLike)
		assert.Empty(t, resp.CommentList.Items)
		assert.NotContains(t, w.Body.String(), "alice@example.com")
	})

	t.Run("owner reads do not count", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/videos/"+public.ID.String(), env.token(t, alice), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), testutil.ReloadVideo(t, env.repos, public.ID).Views)
	})

	t.Run("private video is forbidden to others", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/videos/"+private.ID.String(), env.token(t, bob), nil)
		requireError(t, w, http.StatusForbidden, "FORBIDDEN")

		w = env.do(t, http.MethodGet, "/api/videos/"+private.ID.String(), "", nil)
		requireError(t, w, http.StatusForbidden, "FORBIDDEN")

		w = env.do(t, http.MethodGet, "/api/videos/"+private.ID.String(), env.token(t, alice), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/videos/00000000-0000-0000-0000-000000000001", "", nil)
		requireError(t, w, http.StatusNotFound, "NOT_FOUND")

		w = env.do(t, http.MethodGet, "/api/videos/not-a-uuid", "", nil)
		requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

func TestVideoHandler_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	bob := testutil.CreateUser(t, env.repos, "bob")
	v := testutil.CreateVideo(t, env.repos, alice, "Demo")
	path := "/api/videos/" + v.ID.String()

	title := "Renamed"
	w := env.do(t, http.MethodPut, path, env.token(t, bob), UpdateVideoRequest{Title: &title})
	requireError(t, w, http.StatusForbidden, "FORBIDDEN")

	w = env.do(t, http.MethodPut, path, env.token(t, alice), UpdateVideoRequest{Title: &title})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Renamed", decode[VideoResponse](t, w).Title)

	w = env.do(t, http.MethodDelete, path, env.token(t, bob), nil)
	requireError(t, w, http.StatusForbidden, "FORBIDDEN")

	w = env.do(t, http.MethodDelete, path, env.token(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, path, "", nil)
	requireError(t, w, http.StatusNotFound, "NOT_FOUND")
}

func TestVideoHandler_Trending(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	testutil.CreateVideo(t, env.repos, alice, "Fresh", testutil.WithViews(10))
	testutil.CreateVideo(t, env.repos, alice, "Hot", testutil.WithViews(100))

	w := env.do(t, http.MethodGet, "/api/videos/trending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ListResponse[*VideoResponse]](t, w)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Hot", resp.Items[0].Title)
}
