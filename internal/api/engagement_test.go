package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/testutil"
)

func TestLikeHandler_Toggle(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	bob := testutil.CreateUser(t, env.repos, "bob")
	v := testutil.CreateVideo(t, env.repos, alice, "Demo")
	path := "/api/likes/" + v.ID.String()
	token := env.token(t, bob)

	steps := []struct {
		likeType string
		state    string
		likes    int64
		dislikes int64
	}{
		{models.LikeTypeLike, models.LikeStateLiked, 1, 0},
		{models.LikeTypeLike, models.LikeStateNone, 0, 0},
		{models.LikeTypeDislike, models.LikeStateDisliked, 0, 1},
		{models.LikeTypeLike, models.LikeStateLiked, 1, 0},
	}
	for _, step := range steps {
		w := env.do(t, http.MethodPost, path, token, LikeRequest{Type: step.likeType})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		res := decode[db.LikeResult](t, w)
		assert.Equal(t, step.state, res.State)
		assert.Equal(t, step.likes, res.Likes)
		assert.Equal(t, step.dislikes, res.Dislikes)
	}

	w := env.do(t, http.MethodGet, path+"/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.LikeStateLiked, decode[db.LikeResult](t, w).State)

	w = env.do(t, http.MethodGet, "/api/likes/user/liked", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	liked := decode[ListResponse[*VideoResponse]](t, w)
	require.Len(t, liked.Items, 1)
	assert.Equal(t, v.ID.String(), liked.Items[0].ID)

	w = env.do(t, http.MethodPost, path, token, LikeRequest{Type: "love"})
	requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = env.do(t, http.MethodPost, path, "", LikeRequest{Type: models.LikeTypeLike})
	requireError(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestLikeHandler_PrivateVideo(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	bob := testutil.CreateUser(t, env.repos, "bob")
	v := testutil.CreateVideo(t, env.repos, alice, "Secret", testutil.WithVisibility(models.VisibilityPrivate))

	w := env.do(t, http.MethodPost, "/api/likes/"+v.ID.String(), env.token(t, bob), LikeRequest{Type: models.LikeTypeLike})
	requireError(t, w, http.StatusForbidden, "FORBIDDEN")
}

func TestCommentHandler_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	bob := testutil.CreateUser(t, env.repos, "bob")
	carol := testutil.CreateUser(t, env.repos, "carol")
	v := testutil.CreateVideo(t, env.repos, alice, "Demo")
	other := testutil.CreateVideo(t, env.repos, alice, "Other")

	w := env.do(t, http.MethodPost, "/api/comments", env.token(t, bob), CreateCommentRequest{
		VideoID: v.ID.String(),
		Text:    "  Great video  ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	top := decode[CommentResponse](t, w)
	assert.Equal(t, "Great video", top.Text)
	require.NotNil(t, top.User)
	assert.Equal(t, "bob", top.User.Username)

	w = env.do(t, http.MethodPost, "/api/comments", env.token(t, carol), CreateCommentRequest{
		VideoID:  v.ID.String(),
		Text:     "Agreed",
		ParentID: &top.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("parent on another video", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/comments", env.token(t, carol), CreateCommentRequest{
			VideoID:  other.ID.String(),
			Text:     "Wrong thread",
			ParentID: &top.ID,
		})
		requireError(t, w, http.StatusNotFound, "NOT_FOUND")
	})

	t.Run("list embeds replies", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/comments/video/"+v.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[ListResponse[*CommentResponse]](t, w)
		require.Len(t, resp.Items, 1)
		require.Len(t, resp.Items[0].Replies, 1)
		assert.Equal(t, "Agreed", resp.Items[0].Replies[0].Text)
		assert.Equal(t, int64(2), testutil.ReloadVideo(t, env.repos, v.ID).Comments)
	})

	t.Run("only the author edits", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/comments/"+top.ID, env.token(t, carol), UpdateCommentRequest{Text: "hijack"})
		requireError(t, w, http.StatusForbidden, "FORBIDDEN")

		w = env.do(t, http.MethodPut, "/api/comments/"+top.ID, env.token(t, bob), UpdateCommentRequest{Text: "Edited"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Edited", decode[CommentResponse](t, w).Text)
	})

	t.Run("comment likes accumulate", func(t *testing.T) {
		for i := 1; i <= 2; i++ {
			w := env.do(t, http.MethodPost, "/api/comments/"+top.ID+"/like", env.token(t, carol), nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, int64(i), decode[CommentLikesResponse](t, w).Likes)
		}
	})

	t.Run("video owner deletes the thread", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/comments/"+top.ID, env.token(t, alice), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, int64(0), testutil.ReloadVideo(t, env.repos, v.ID).Comments)
	})
}

func TestNotificationHandler(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.repos, "alice")
	bob := testutil.CreateUser(t, env.repos, "bob")
	v := testutil.CreateVideo(t, env.repos, alice, "Demo")
	aliceToken := env.token(t, alice)

	w := env.do(t, http.MethodPost, "/api/likes/"+v.ID.String(), env.token(t, bob), LikeRequest{Type: models.LikeTypeLike})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/api/users/"+alice.ID.String()+"/subscribe", env.token(t, bob), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/notifications/unread-count", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode[UnreadCountResponse](t, w).Count)

	w = env.do(t, http.MethodGet, "/api/notifications?unreadOnly=true", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[ListResponse[*NotificationResponse]](t, w)
	require.Len(t, list.Items, 2)
	for _, n := range list.Items {
		require.NotNil(t, n.Actor)
		assert.Equal(t, "bob", n.Actor.Username)
	}

	first := list.Items[0].ID

	t.Run("other users cannot touch it", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/notifications/"+first+"/read", env.token(t, bob), nil)
		requireError(t, w, http.StatusNotFound, "NOT_FOUND")
	})

	w = env.do(t, http.MethodPut, "/api/notifications/"+first+"/read", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/notifications/unread-count", aliceToken, nil)
	assert.Equal(t, int64(1), decode[UnreadCountResponse](t, w).Count)

	w = env.do(t, http.MethodPut, "/api/notifications/read-all", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[MarkAllReadResponse](t, w).Updated)

	w = env.do(t, http.MethodDelete, "/api/notifications/"+first, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/notifications", aliceToken, nil)
	assert.Len(t, decode[ListResponse[*NotificationResponse]](t, w).Items, 1)
}
