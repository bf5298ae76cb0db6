package comment

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/notification"
	"github.com/stwalsh4118/vidhub/internal/testutil"
)

func setupCommentTest(t *testing.T) (*CommentService, *db.Repositories) {
	t.Helper()
	_, repos := testutil.NewDB(t)
	return NewCommentService(repos, notification.NewNotificationService(repos)), repos
}

func TestCreate_CommentAndReply(t *testing.T) {
	service, repos := setupCommentTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	video := testutil.CreateVideo(t, repos, alice, "Demo")

	top, err := service.Create(ctx, bob, CreateInput{VideoID: video.ID, Text: "  great video  "})
	require.NoError(t, err)
	assert.Equal(t, "great video", top.Text)
	assert.Nil(t, top.ParentID)

	reply, err := service.Create(ctx, alice, CreateInput{VideoID: video.ID, Text: "thanks", ParentID: &top.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID)

	nested, err := service.Create(ctx, bob, CreateInput{VideoID: video.ID, Text: "welcome", ParentID: &reply.ID})
	require.NoError(t, err)
	require.NotNil(t, nested.ParentID)
	assert.Equal(t, top.ID, *nested.ParentID, "replies to replies attach to the top-level comment")

	assert.Equal(t, int64(3), testutil.ReloadVideo(t, repos, video.ID).Comments)

	// alice: comment from bob; bob: reply from alice. bob's nested reply targets his own comment.
	aliceUnread, err := repos.Notifications.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceUnread)
	bobUnread, err := repos.Notifications.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobUnread)
}

func TestCreate_Errors(t *testing.T) {
	service, repos := setupCommentTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	video := testutil.CreateVideo(t, repos, alice, "Demo")
	other := testutil.CreateVideo(t, repos, alice, "Other")
	private := testutil.CreateVideo(t, repos, alice, "Secret", testutil.WithVisibility(models.VisibilityPrivate))

	onOther, err := service.Create(ctx, bob, CreateInput{VideoID: other.ID, Text: "hi"})
	require.NoError(t, err)

	missing := uuid.New()
	tests := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{"empty text", CreateInput{VideoID: video.ID, Text: "   "}, ErrEmptyText},
		{"too long", CreateInput{VideoID: video.ID, Text: strings.Repeat("a", MaxTextLength+1)}, ErrTextTooLong},
		{"missing video", CreateInput{VideoID: uuid.New(), Text: "hi"}, ErrVideoNotFound},
		{"private video", CreateInput{VideoID: private.ID, Text: "hi"}, ErrPrivateVideo},
		{"missing parent", CreateInput{VideoID: video.ID, Text: "hi", ParentID: &missing}, ErrParentNotFound},
		{"parent on other video", CreateInput{VideoID: video.ID, Text: "hi", ParentID: &onOther.ID}, ErrParentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, bob, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Zero(t, testutil.ReloadVideo(t, repos, video.ID).Comments)
}

func TestList_RepliesOldestFirst(t *testing.T) {
	service, repos := setupCommentTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	video := testutil.CreateVideo(t, repos, alice, "Demo")

	top, err := service.Create(ctx, alice, CreateInput{VideoID: video.ID, Text: "first"})
	require.NoError(t, err)
	for _, text := range []string{"r1", "r2"} {
		_, err := service.Create(ctx, alice, CreateInput{VideoID: video.ID, Text: text, ParentID: &top.ID})
		require.NoError(t, err)
	}

	page, err := service.List(ctx, video.ID, nil, db.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)
	require.Len(t, page.Items[0].Replies, 2)
	assert.Equal(t, "r1", page.Items[0].Replies[0].Text)
	assert.Equal(t, "r2", page.Items[0].Replies[1].Text)
	require.NotNil(t, page.Items[0].User)
	assert.Equal(t, "alice", page.Items[0].User.Username)
}

func TestUpdateAndDelete_Permissions(t *testing.T) {
	service, repos := setupCommentTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	carol := testutil.CreateUser(t, repos, "carol")
	video := testutil.CreateVideo(t, repos, alice, "Demo")

	c, err := service.Create(ctx, bob, CreateInput{VideoID: video.ID, Text: "hello"})
	require.NoError(t, err)
	_, err = service.Create(ctx, carol, CreateInput{VideoID: video.ID, Text: "reply", ParentID: &c.ID})
	require.NoError(t, err)

	_, err = service.Update(ctx, alice.ID, c.ID, "edited")
	assert.ErrorIs(t, err, ErrNotAuthor)

	updated, err := service.Update(ctx, bob.ID, c.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	err = service.Delete(ctx, carol.ID, c.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)

	// The video owner may delete comments on their video.
	require.NoError(t, service.Delete(ctx, alice.ID, c.ID))
	assert.Zero(t, testutil.ReloadVideo(t, repos, video.ID).Comments)

	err = service.Delete(ctx, alice.ID, c.ID)
	assert.True(t, IsCommentNotFound(err))
}

func TestLike_NotDeduplicated(t *testing.T) {
	service, repos := setupCommentTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	video := testutil.CreateVideo(t, repos, alice, "Demo")
	c, err := service.Create(ctx, alice, CreateInput{VideoID: video.ID, Text: "hello"})
	require.NoError(t, err)

	likes, err := service.Like(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	likes, err = service.Like(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)

	_, err = service.Like(ctx, uuid.New())
	assert.True(t, IsCommentNotFound(err))
}
