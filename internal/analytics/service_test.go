package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/testutil"
)

func setupAnalyticsTest(t *testing.T) (*AnalyticsService, *db.Repositories) {
	t.Helper()
	_, repos := testutil.NewDB(t)
	return NewAnalyticsService(repos), repos
}

func sum(rows []db.DailyCount) int64 {
	var n int64
	for _, r := range rows {
		n += r.Count
	}
	return n
}

func TestClampDays(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultDays},
		{-3, DefaultDays},
		{7, 7},
		{365, 365},
		{1000, MaxDays},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampDays(tt.in), "ClampDays(%d)", tt.in)
	}
}

func TestLikeRatio(t *testing.T) {
	assert.Equal(t, 0.0, likeRatio(0, 0))
	assert.Equal(t, 75.0, likeRatio(3, 1))
	assert.Equal(t, 66.67, likeRatio(2, 1))
}

func TestChannel(t *testing.T) {
	service, repos := setupAnalyticsTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	for i, views := range []int64{10, 40, 5, 1, 7, 30} {
		testutil.CreateVideo(t, repos, alice, string(rune('a'+i)), testutil.WithViews(views))
	}
	testutil.CreateVideo(t, repos, alice, "ancient", testutil.CreatedAgo(90*24*time.Hour))
	require.NoError(t, repos.Subscriptions.Create(ctx, models.NewSubscription(bob.ID, alice.ID)))

	report, err := service.Channel(ctx, alice, alice.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDays, report.Days)
	assert.Equal(t, int64(7), report.Totals.Videos)
	assert.Equal(t, int64(93), report.Totals.Views)
	assert.Equal(t, int64(1), report.Totals.Subscribers)
	require.Len(t, report.TopVideos, topVideos)
	assert.Equal(t, int64(40), report.TopVideos[0].Views)
	assert.Equal(t, int64(6), sum(report.Uploads), "uploads outside the window are excluded")
	assert.Equal(t, int64(1), sum(report.Subscribers))

	_, err = service.Channel(ctx, bob, alice.ID, 30)
	assert.ErrorIs(t, err, ErrAccessDenied)

	bob.IsAdmin = true
	_, err = service.Channel(ctx, bob, alice.ID, 30)
	require.NoError(t, err)
}

func TestVideo(t *testing.T) {
	service, repos := setupAnalyticsTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	carol := testutil.CreateUser(t, repos, "carol")
	video := testutil.CreateVideo(t, repos, alice, "demo")

	_, err := repos.Likes.Toggle(ctx, bob.ID, video.ID, models.LikeTypeLike)
	require.NoError(t, err)
	_, err = repos.Likes.Toggle(ctx, carol.ID, video.ID, models.LikeTypeDislike)
	require.NoError(t, err)
	require.NoError(t, repos.Comments.Create(ctx, models.NewComment(bob.ID, video.ID, "hi", nil)))

	report, err := service.Video(ctx, alice, video.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 50.0, report.LikeRatio)
	assert.Equal(t, 1.0, report.AvgCommentsPerDay)
	assert.Equal(t, int64(1), sum(report.Likes))
	assert.Equal(t, int64(1), sum(report.Dislikes))
	assert.Equal(t, int64(1), sum(report.Comments))

	_, err = service.Video(ctx, bob, video.ID, 7)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestPlatform(t *testing.T) {
	service, repos := setupAnalyticsTest(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, repos, "admin")
	admin.IsAdmin = true
	alice := testutil.CreateUser(t, repos, "alice")
	require.NoError(t, repos.Users.SetActive(ctx, alice.ID, false))
	testutil.CreateVideo(t, repos, admin, "a", testutil.WithViews(10))
	testutil.CreateVideo(t, repos, admin, "b", testutil.WithViews(5), testutil.WithCategory("music"))

	report, err := service.Platform(ctx, admin, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Users)
	assert.Equal(t, int64(1), report.ActiveUsers)
	assert.Equal(t, int64(2), report.Videos)
	assert.Equal(t, int64(15), report.Views)
	assert.Equal(t, 7.5, report.AvgViews)
	assert.Len(t, report.Categories, 2)
	assert.Equal(t, int64(2), sum(report.NewUsers))
	assert.Equal(t, int64(2), sum(report.Uploads))

	_, err = service.Platform(ctx, alice, 30)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
