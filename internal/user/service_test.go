package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/vidhub/internal/db"
	"github.com/stwalsh4118/vidhub/internal/models"
	"github.com/stwalsh4118/vidhub/internal/notification"
	"github.com/stwalsh4118/vidhub/internal/testutil"
)

func setupUserTest(t *testing.T) (*UserService, *db.Repositories) {
	t.Helper()
	_, repos := testutil.NewDB(t)
	return NewUserService(repos, notification.NewNotificationService(repos)), repos
}

func TestSubscribe_Lifecycle(t *testing.T) {
	service, repos := setupUserTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")

	status, err := service.Subscribe(ctx, bob, alice.ID)
	require.NoError(t, err)
	assert.True(t, status.Subscribed)
	assert.Equal(t, int64(1), status.Subscribers)
	assert.Equal(t, int64(1), testutil.ReloadUser(t, repos, alice.ID).Subscribers)

	_, err = service.Subscribe(ctx, bob, alice.ID)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
	assert.Equal(t, int64(1), testutil.ReloadUser(t, repos, alice.ID).Subscribers)

	unread, err := repos.Notifications.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	status, err = service.SubscriptionStatus(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, status.Subscribed)

	status, err = service.Unsubscribe(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, status.Subscribed)
	assert.Zero(t, status.Subscribers)

	_, err = service.Unsubscribe(ctx, bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotSubscribed)
	assert.Zero(t, testutil.ReloadUser(t, repos, alice.ID).Subscribers)
}

func TestSubscribe_Errors(t *testing.T) {
	service, repos := setupUserTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")

	_, err := service.Subscribe(ctx, alice, alice.ID)
	assert.ErrorIs(t, err, ErrSelfSubscribe)

	_, err = service.Subscribe(ctx, alice, uuid.New())
	assert.True(t, IsUserNotFound(err))

	_, err = service.SetActive(ctx, bob.ID, false)
	require.NoError(t, err)
	_, err = service.Subscribe(ctx, alice, bob.ID)
	assert.True(t, IsUserNotFound(err))

	_, err = service.Profile(ctx, bob.ID)
	assert.True(t, IsUserNotFound(err))

	reenabled, err := service.SetActive(ctx, bob.ID, true)
	require.NoError(t, err)
	assert.True(t, reenabled.IsActive)

	_, err = service.SetActive(ctx, uuid.New(), true)
	assert.True(t, IsUserNotFound(err))
}

func TestSubscriptionsAndFeed(t *testing.T) {
	service, repos := setupUserTest(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, repos, "alice")
	bob := testutil.CreateUser(t, repos, "bob")
	carol := testutil.CreateUser(t, repos, "carol")

	testutil.CreateVideo(t, repos, alice, "alice public")
	testutil.CreateVideo(t, repos, alice, "alice private", testutil.WithVisibility(models.VisibilityPrivate))
	testutil.CreateVideo(t, repos, carol, "carol public")

	_, err := service.Subscribe(ctx, bob, alice.ID)
	require.NoError(t, err)

	subs, err := service.Subscriptions(ctx, bob.ID, db.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, subs.Items, 1)
	assert.Equal(t, alice.ID, subs.Items[0].ID)

	feed, err := service.Feed(ctx, bob.ID, db.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "alice public", feed.Items[0].Title)
}
