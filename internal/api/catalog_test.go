package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/testutil"
	"github.com/stwalsh4118/vidhub/internal/user"
)

func TestPlaylistHandler_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	bob := testutil.CreateUser(t, env.repos, "bob")
	v1 := testutil.CreateVideo(t, env.repos, alice, "One")
	v2 := testutil.CreateVideo(t, env.repos, alice, "Two")
	v3 := testutil.CreateVideo(t, env.repos, alice, "Three")
	token := env.token(t, alice)

	w := env.do(t, http.MethodPost, "/api/playlists", token, CreatePlaylistRequest{Name: "Favorites"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[PlaylistResponse](t, w)
	assert.Equal(t, models.VisibilityPublic, created.Visibility)
	path := "/api/playlists/" + created.ID

	w = env.do(t, http.MethodPost, path+"/videos", token, PlaylistVideosRequest{
		VideoIDs: []string{v1.ID.String(), v2.ID.String(), v1.ID.String(), v3.ID.String()},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(3), decode[AddVideosResponse](t, w).Added)

	t.Run("entries keep request order", func(t *testing.T) {
		w := env.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		detail := decode[PlaylistDetailResponse](t, w)
		assert.Equal(t, int64(3), detail.VideoCount)
		require.Len(t, detail.Videos, 3)
		assert.Equal(t, "One", detail.Videos[0].Video.Title)
		assert.Equal(t, "Three", detail.Videos[2].Video.Title)
		assert.Less(t, detail.Videos[0].Position, detail.Videos[1].Position)
	})

	t.Run("non-owner cannot modify", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path+"/videos", env.token(t, bob), PlaylistVideosRequest{VideoIDs: []string{v1.ID.String()}})
		requireError(t, w, http.StatusForbidden, "FORBIDDEN")
	})

	t.Run("unknown video", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path+"/videos", token, PlaylistVideosRequest{VideoIDs: []string{uuid.NewString()}})
		requireError(t, w, http.StatusNotFound, "NOT_FOUND")
	})

	t.Run("malformed id in body", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path+"/videos", token, PlaylistVideosRequest{VideoIDs: []string{"nope"}})
		requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("reorder requires the exact set", func(t *testing.T) {
		w := env.do(t, http.MethodPut, path+"/reorder", token, PlaylistVideosRequest{VideoIDs: []string{v1.ID.String()}})
		requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

		w = env.do(t, http.MethodPut, path+"/reorder", token, PlaylistVideosRequest{
			VideoIDs: []string{v3.ID.String(), v1.ID.String(), v2.ID.String()},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.do(t, http.MethodGet, path, "", nil)
		detail := decode[PlaylistDetailResponse](t, w)
		require.Len(t, detail.Videos, 3)
		for i, entry := range detail.Videos {
			assert.Equal(t, i+1, entry.Position)
		}
		assert.Equal(t, "Three", detail.Videos[0].Video.Title)
	})

	t.Run("remove video", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, path+"/videos/"+v1.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.do(t, http.MethodDelete, path+"/videos/"+v1.ID.String(), token, nil)
		requireError(t, w, http.StatusNotFound, "NOT_FOUND")
	})

	t.Run("private playlists are hidden", func(t *testing.T) {
		private := "private"
		w := env.do(t, http.MethodPut, path, token, UpdatePlaylistRequest{Visibility: &private})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.do(t, http.MethodGet, path, env.token(t, bob), nil)
		requireError(t, w, http.StatusForbidden, "FORBIDDEN")

		w = env.do(t, http.MethodGet, "/api/playlists/user/"+alice.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[ListResponse[*PlaylistResponse]](t, w).Items)

		w = env.do(t, http.MethodGet, "/api/playlists", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[ListResponse[*PlaylistResponse]](t, w).Items, 1)
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, path, token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodGet, path, token, nil)
		requireError(t, w, http.StatusNotFound, "NOT_FOUND")
	})
}

func TestUserHandler_Subscriptions(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	bob := testutil.CreateUser(t, env.repos, "bob")
	testutil.CreateVideo(t, env.repos, alice, "Upload")
	bobToken := env.token(t, bob)
	subscribe := "/api/users/" + alice.ID.String() + "/subscribe"

	w := env.do(t, http.MethodPost, subscribe, bobToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(1), decode[user.SubscriptionStatus](t, w).Subscribers)

	w = env.do(t, http.MethodPost, subscribe, bobToken, nil)
	resp := requireError(t, w, http.StatusConflict, "CONFLICT")
	assert.Equal(t, "Already subscribed", resp.Error)

	w = env.do(t, http.MethodPost, "/api/users/"+bob.ID.String()+"/subscribe", bobToken, nil)
	requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = env.do(t, http.MethodGet, "/api/users/"+alice.ID.String()+"/subscription-status", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[user.SubscriptionStatus](t, w).Subscribed)

	w = env.do(t, http.MethodGet, "/api/users/me/subscriptions", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	subs := decode[ListResponse[*UserSummary]](t, w)
	require.Len(t, subs.Items, 1)
	assert.Equal(t, "alice", subs.Items[0].Username)

	w = env.do(t, http.MethodGet, "/api/users/me/feed", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	feed := decode[ListResponse[*VideoResponse]](t, w)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "Upload", feed.Items[0].Title)

	w = env.do(t, http.MethodDelete, subscribe, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[user.SubscriptionStatus](t, w)
	assert.False(t, status.Subscribed)
	assert.Equal(t, int64(0), status.Subscribers)

	w = env.do(t, http.MethodDelete, subscribe, bobToken, nil)
	resp = requireError(t, w, http.StatusNotFound, "NOT_FOUND")
	assert.Equal(t, "Not subscribed", resp.Error)
}

func TestUserHandler_ProfileAndStatus(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	admin := testutil.CreateUser(t, env.repos, "admin")
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", admin.ID.String()).Update("is_admin", true).Error)

	w := env.do(t, http.MethodGet, "/api/users/"+alice.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode[ProfileResponse](t, w).Username)
	assert.NotContains(t, w.Body.String(), "alice@example.com")

	inactive := false
	w = env.do(t, http.MethodPut, "/api/users/"+alice.ID.String()+"/status", env.token(t, alice), UserStatusRequest{IsActive: &inactive})
	requireError(t, w, http.StatusForbidden, "FORBIDDEN")

	w = env.do(t, http.MethodPut, "/api/users/"+alice.ID.String()+"/status", env.token(t, admin), UserStatusRequest{IsActive: &inactive})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, decode[ProfileResponse](t, w).IsActive)

	w = env.do(t, http.MethodGet, "/api/users/"+alice.ID.String(), "", nil)
	requireError(t, w, http.StatusNotFound, "NOT_FOUND")

	w = env.do(t, http.MethodGet, "/api/auth/me", env.token(t, alice), nil)
	requireError(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestSearchHandler(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	testutil.CreateVideo(t, env.repos, alice, "Go tutorial", testutil.WithTags("golang"))
	testutil.CreateVideo(t, env.repos, alice, "Cooking", testutil.WithTags("food"))
	w := env.do(t, http.MethodPost, "/api/playlists", env.token(t, alice), CreatePlaylistRequest{Name: "tutorial picks"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("all types", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/search?q=tutorial", "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[SearchResponse](t, w)
		require.NotNil(t, resp.Videos)
		require.NotNil(t, resp.Users)
		require.NotNil(t, resp.Playlists)
		assert.Len(t, resp.Videos.Items, 1)
		assert.Empty(t, resp.Users.Items)
		assert.Len(t, resp.Playlists.Items, 1)
		assert.Equal(t, int64(2), resp.Total)
	})

	t.Run("single type", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/search?q=alice&type=users", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[SearchResponse](t, w)
		assert.Nil(t, resp.Videos)
		require.NotNil(t, resp.Users)
		assert.Len(t, resp.Users.Items, 1)
	})

	t.Run("query required", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/search", "", nil)
		requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	t.Run("suggestions", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/search/suggestions?q=go", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Go tutorial"}, decode[SuggestionsResponse](t, w).Suggestions)
	})

	t.Run("trending tags", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/search/trending", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[TrendingTagsResponse](t, w).Tags, 2)
	})

	t.Run("advanced", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/search/advanced?tags=food,unused&uploadDate=week", "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[ListResponse[*VideoResponse]](t, w)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Cooking", resp.Items[0].Title)

		w = env.do(t, http.MethodGet, "/api/search/advanced?tags=unused,%20GoLang", "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp = decode[ListResponse[*VideoResponse]](t, w)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Go tutorial", resp.Items[0].Title)

		w = env.do(t, http.MethodGet, "/api/search/advanced?minDuration=abc", "", nil)
		requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

		w = env.do(t, http.MethodGet, "/api/search/advanced?uploadDate=decade", "", nil)
		requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

func TestAnalyticsHandler(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	bob := testutil.CreateUser(t, env.repos, "bob")
	v := testutil.CreateVideo(t, env.repos, alice, "Demo", testutil.WithViews(40))

	w := env.do(t, http.MethodGet, "/api/analytics/channel/"+alice.ID.String()+"?days=7", env.token(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	channel := decode[ChannelAnalyticsResponse](t, w)
	assert.Equal(t, 7, channel.Days)
	assert.Equal(t, int64(1), channel.Totals.Videos)
	assert.Equal(t, int64(40), channel.Totals.Views)
	require.Len(t, channel.TopVideos, 1)
	require.Len(t, channel.Uploads, 1)
	assert.Equal(t, int64(1), channel.Uploads[0].Count)
	assert.NotNil(t, channel.Comments)

	w = env.do(t, http.MethodGet, "/api/analytics/channel/"+alice.ID.String(), env.token(t, bob), nil)
	requireError(t, w, http.StatusForbidden, "FORBIDDEN")

	w = env.do(t, http.MethodGet, "/api/analytics/video/"+v.ID.String()+"?days=9999", env.token(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	video := decode[VideoAnalyticsResponse](t, w)
	assert.Equal(t, 365, video.Days)
	assert.Equal(t, float64(0), video.LikeRatio)

	w = env.do(t, http.MethodGet, "/api/analytics/platform", env.token(t, alice), nil)
	requireError(t, w, http.StatusForbidden, "FORBIDDEN")
}
