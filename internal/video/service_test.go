package video

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/errs"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/notification"
	"github.com/stwalsh4118/vidhub/internal/testutil"
)

func setupVideoTest(t *testing.T) (*VideoService, *db.Repositories) {
	t.Helper()
	_, repos := testutil.NewDB(t)
	return NewVideoService(repos, notification.NewNotificationService(repos)), repos
}

func demoInput() CreateInput {
	return CreateInput{
		Title:     "Demo",
		Thumbnail: "https://cdn.example.com/demo.jpg",
		VideoURL:  "https://cdn.example.com/demo.mp4",
		Category:  "education",
		Tags:      []string{" Go ", "go", "Tutorial"},
	}
}

func TestCreate_IncrementsVideoCount(t *testing.T) {
	service, repos := setupVideoTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")

	video, err := service.Create(ctx, alice, demoInput())
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPublic, video.Visibility)
	assert.Equal(t, []string{"go", "tutorial"}, video.Tags)
	assert.Equal(t, int64(1), testutil.ReloadUser(t, repos, alice.ID).VideoCount)
}

func TestCreate_InvalidCategory(t *testing.T) {
	service, repos := setupVideoTest(t)
	alice := testutil.CreateUser(t, repos, "alice")

	in := demoInput()
	in.Category = "knitting"
	_, err := service.Create(context.Background(), alice, in)
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, int64(0), testutil.ReloadUser(t, repos, alice.ID).VideoCount)
}

func TestCreate_NotifiesSubscribers(t *testing.T) {
	service, repos := setupVideoTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	require.NoError(t, repos.Subscriptions.Create(ctx, models.NewSubscription(bob.ID, alice.ID)))

	_, err := service.Create(ctx, alice, demoInput())
	require.NoError(t, err)

	count, err := repos.Notifications.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	private := demoInput()
	private.Visibility = models.VisibilityPrivate
	_, err = service.Create(ctx, alice, private)
	require.NoError(t, err)

	count, err = repos.Notifications.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWatch_ViewCounting(t *testing.T) {
	service, repos := setupVideoTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	video := testutil.CreateVideo(t, repos, alice, "Demo")

	detail, err := service.Watch(ctx, video.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.Video.Views)
	assert.Equal(t, models.LikeStateNone, detail.LikeState)
	assert.NotNil(t, detail.Comments)

	_, err = service.Watch(ctx, video.ID, nil)
	require.NoError(t, err)

	_, err = service.Watch(ctx, video.ID, alice)
	require.NoError(t, err)

	assert.Equal(t, int64(2), testutil.ReloadVideo(t, repos, video.ID).Views)
	assert.Equal(t, int64(2), testutil.ReloadUser(t, repos, alice.ID).TotalViews)
}

func TestWatch_PrivateVideo(t *testing.T) {
	service, repos := setupVideoTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	video := testutil.CreateVideo(t, repos, alice, "Secret", testutil.WithVisibility(models.VisibilityPrivate))

	_, err := service.Watch(ctx, video.ID, bob)
	assert.ErrorIs(t, err, ErrPrivateVideo)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	_, err = service.Watch(ctx, video.ID, nil)
	assert.ErrorIs(t, err, ErrPrivateVideo)

	detail, err := service.Watch(ctx, video.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), detail.Video.Views)

	_, err = service.Watch(ctx, uuid.New(), alice)
	assert.True(t, IsVideoNotFound(err))
}

func TestWatch_ReportsLikeState(t *testing.T) {
	service, repos := setupVideoTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	video := testutil.CreateVideo(t, repos, alice, "Demo")
	_, err := repos.Likes.Toggle(ctx, bob.ID, video.ID, models.LikeTypeDislike)
	require.NoError(t, err)

	detail, err := service.Watch(ctx, video.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStateDisliked, detail.LikeState)
	assert.Equal(t, int64(1), detail.Video.Dislikes)
}

func TestList_SortAllowList(t *testing.T) {
	service, repos := setupVideoTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	testutil.CreateVideo(t, repos, alice, "B video", testutil.WithViews(3))
	testutil.CreateVideo(t, repos, alice, "A video", testutil.WithViews(7))

	_, err := service.List(ctx, ListInput{SortBy: "password"}, db.NewPage(1, 10))
	assert.ErrorIs(t, err, ErrInvalidSort)

	_, err = service.List(ctx, ListInput{SortOrder: "sideways"}, db.NewPage(1, 10))
	assert.ErrorIs(t, err, ErrInvalidSort)

	page, err := service.List(ctx, ListInput{SortBy: "title", SortOrder: "asc"}, db.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "A video", page.Items[0].Title)

	page, err = service.List(ctx, ListInput{SortBy: "views"}, db.NewPage(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "A video", page.Items[0].Title)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
}

func TestListByUser_VisibilityByViewer(t *testing.T) {
	service, repos := setupVideoTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	testutil.CreateVideo(t, repos, alice, "Public")
	testutil.CreateVideo(t, repos, alice, "Private", testutil.WithVisibility(models.VisibilityPrivate))

	own, err := service.ListByUser(ctx, alice.ID, alice, db.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), own.Pagination.Total)

	other, err := service.ListByUser(ctx, alice.ID, bob, db.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), other.Pagination.Total)

	anon, err := service.ListByUser(ctx, alice.ID, nil, db.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), anon.Pagination.Total)
}

func TestUpdateAndDelete_OwnerOnly(t *testing.T) {
	service, repos := setupVideoTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	video, err := service.Create(ctx, alice, demoInput())
	require.NoError(t, err)

	title := "Hacked"
	_, err = service.Update(ctx, bob.ID, video.ID, UpdateInput{Title: &title})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.ErrorIs(t, service.Delete(ctx, bob.ID, video.ID), ErrNotOwner)

	title = "Demo v2"
	status := models.StatusDraft
	updated, err := service.Update(ctx, alice.ID, video.ID, UpdateInput{Title: &title, Status: &status, Tags: []string{"Intro"}})
	require.NoError(t, err)
	assert.Equal(t, "Demo v2", updated.Title)
	reloaded := testutil.ReloadVideo(t, repos, video.ID)
	assert.Equal(t, models.StatusDraft, reloaded.Status)
	assert.Equal(t, []string{"intro"}, reloaded.Tags)

	bad := "sideways"
	_, err = service.Update(ctx, alice.ID, video.ID, UpdateInput{Visibility: &bad})
	assert.ErrorIs(t, err, ErrInvalidVisibility)

	require.NoError(t, service.Delete(ctx, alice.ID, video.ID))
	assert.Equal(t, int64(0), testutil.ReloadUser(t, repos, alice.ID).VideoCount)
	assert.True(t, IsVideoNotFound(service.Delete(ctx, alice.ID, video.ID)))
}
