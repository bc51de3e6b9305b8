package service

import (
	"context"
	"testing"

	"pinboard/internal/models"
	"pinboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFeedFixture() (*PinService, *MockPinRepository, *MockUserRepository, *MockFollowRepository) {
	pins := new(MockPinRepository)
	users := new(MockUserRepository)
	follows := new(MockFollowRepository)
	svc := NewPinService(pins, users, NewVisibilityResolver(follows), nil)
	return svc, pins, users, follows
}

func capturedFilter(pins *MockPinRepository) *repository.FeedFilter {
	for _, call := range pins.Calls {
		if call.Method == "List" {
			return call.Arguments.Get(1).(*repository.FeedFilter)
		}
	}
	return nil
}

func TestFeedUnfiltered(t *testing.T) {
	svc, pins, _, _ := newFeedFixture()
	pins.On("List", mock.Anything, mock.Anything, uint(0), 50, 0).
		Return([]models.Pin{{ID: 1}}, int64(1), nil)

	page, err := svc.Feed(context.Background(), FeedParams{})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, capturedFilter(pins).Empty())
}

func TestFeedTextAndTagConditions(t *testing.T) {
	svc, pins, _, _ := newFeedFixture()
	pins.On("List", mock.Anything, mock.Anything, uint(0), 50, 0).
		Return(nil, int64(0), nil)

	_, err := svc.Feed(context.Background(), FeedParams{Query: "sunset", Tag: "nature"})
	require.NoError(t, err)

	conds := capturedFilter(pins).Conditions()
	require.Len(t, conds, 2)
	assert.IsType(t, repository.TextMatch{}, conds[0])
	assert.IsType(t, repository.TagMatch{}, conds[1])
}

func TestFeedUnknownOwnerYieldsEmptySentinel(t *testing.T) {
	svc, pins, users, _ := newFeedFixture()
	users.On("GetByID", mock.Anything, uint(42)).
		Return(nil, models.NewNotFoundError("User", 42))
	pins.On("List", mock.Anything, mock.Anything, uint(0), 50, 0).
		Return(nil, int64(0), nil)

	page, err := svc.Feed(context.Background(), FeedParams{OwnerRef: "42"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)

	conds := capturedFilter(pins).Conditions()
	require.Len(t, conds, 1)
	assert.IsType(t, repository.SentinelEmpty{}, conds[0])
}

func TestFeedNonNumericOwnerYieldsEmptySentinel(t *testing.T) {
	svc, pins, _, _ := newFeedFixture()
	pins.On("List", mock.Anything, mock.Anything, uint(0), 50, 0).
		Return(nil, int64(0), nil)

	_, err := svc.Feed(context.Background(), FeedParams{OwnerRef: "not-a-number"})
	require.NoError(t, err)

	conds := capturedFilter(pins).Conditions()
	require.Len(t, conds, 1)
	assert.IsType(t, repository.SentinelEmpty{}, conds[0])
}

func TestFeedOwnerByEmail(t *testing.T) {
	svc, pins, users, _ := newFeedFixture()
	owner := &models.User{ID: 7, ProfileVisibility: models.ProfileVisibilityPublic}
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(owner, nil)
	pins.On("List", mock.Anything, mock.Anything, uint(0), 50, 0).
		Return(nil, int64(0), nil)

	_, err := svc.Feed(context.Background(), FeedParams{OwnerRef: "alice@example.com"})
	require.NoError(t, err)

	conds := capturedFilter(pins).Conditions()
	require.Len(t, conds, 1)
	assert.Equal(t, repository.OwnerPins{UserID: 7}, conds[0])
	users.AssertExpectations(t)
}

func TestFeedPrivateOwnerHiddenFromStranger(t *testing.T) {
	svc, pins, users, follows := newFeedFixture()
	owner := &models.User{ID: 7, ProfileVisibility: models.ProfileVisibilityPrivate}
	users.On("GetByID", mock.Anything, uint(7)).Return(owner, nil)
	follows.On("IsFollowing", mock.Anything, uint(3), uint(7)).Return(false, nil)
	pins.On("List", mock.Anything, mock.Anything, uint(3), 50, 0).
		Return(nil, int64(0), nil)

	_, err := svc.Feed(context.Background(), FeedParams{OwnerRef: "7", ViewerID: 3})
	require.NoError(t, err)

	conds := capturedFilter(pins).Conditions()
	require.Len(t, conds, 1)
	assert.IsType(t, repository.SentinelEmpty{}, conds[0])
}

func TestFeedPrivateOwnerVisibleToFollower(t *testing.T) {
	svc, pins, users, follows := newFeedFixture()
	owner := &models.User{ID: 7, ProfileVisibility: models.ProfileVisibilityPrivate}
	users.On("GetByID", mock.Anything, uint(7)).Return(owner, nil)
	follows.On("IsFollowing", mock.Anything, uint(3), uint(7)).Return(true, nil)
	pins.On("List", mock.Anything, mock.Anything, uint(3), 50, 0).
		Return(nil, int64(0), nil)

	_, err := svc.Feed(context.Background(), FeedParams{OwnerRef: "7", ViewerID: 3})
	require.NoError(t, err)

	conds := capturedFilter(pins).Conditions()
	require.Len(t, conds, 1)
	assert.Equal(t, repository.OwnerPins{UserID: 7}, conds[0])
}

func TestFeedFavoritesSelectsOwnerSaves(t *testing.T) {
	svc, pins, users, _ := newFeedFixture()
	owner := &models.User{ID: 7, ProfileVisibility: models.ProfileVisibilityPublic}
	users.On("GetByID", mock.Anything, uint(7)).Return(owner, nil)
	pins.On("List", mock.Anything, mock.Anything, uint(0), 50, 0).
		Return(nil, int64(0), nil)

	_, err := svc.Feed(context.Background(), FeedParams{OwnerRef: "7", FavoritesOnly: true})
	require.NoError(t, err)

	conds := capturedFilter(pins).Conditions()
	require.Len(t, conds, 1)
	assert.Equal(t, repository.OwnerSaves{UserID: 7}, conds[0])
}

func TestFeedFavoritesWithoutOwnerUsesViewer(t *testing.T) {
	svc, pins, _, _ := newFeedFixture()
	pins.On("List", mock.Anything, mock.Anything, uint(3), 50, 0).
		Return(nil, int64(0), nil)

	_, err := svc.Feed(context.Background(), FeedParams{FavoritesOnly: true, ViewerID: 3})
	require.NoError(t, err)

	conds := capturedFilter(pins).Conditions()
	require.Len(t, conds, 1)
	assert.Equal(t, repository.OwnerSaves{UserID: 3}, conds[0])
}

func TestFeedFavoritesAnonymousIsEmpty(t *testing.T) {
	svc, pins, _, _ := newFeedFixture()
	pins.On("List", mock.Anything, mock.Anything, uint(0), 50, 0).
		Return(nil, int64(0), nil)

	_, err := svc.Feed(context.Background(), FeedParams{FavoritesOnly: true})
	require.NoError(t, err)

	conds := capturedFilter(pins).Conditions()
	require.Len(t, conds, 1)
	assert.IsType(t, repository.SentinelEmpty{}, conds[0])
}

func TestFeedPagination(t *testing.T) {
	svc, pins, _, _ := newFeedFixture()
	pins.On("List", mock.Anything, mock.Anything, uint(0), 10, 20).
		Return(nil, int64(45), nil)

	page, err := svc.Feed(context.Background(), FeedParams{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 5, page.TotalPages)
}

func TestFeedLimitCapped(t *testing.T) {
	svc, pins, _, _ := newFeedFixture()
	pins.On("List", mock.Anything, mock.Anything, uint(0), 100, 0).
		Return(nil, int64(0), nil)

	page, err := svc.Feed(context.Background(), FeedParams{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
}

func TestCreatePinValidation(t *testing.T) {
	svc, _, _, _ := newFeedFixture()

	tests := []struct {
		name  string
		input CreatePinInput
	}{
		{"missing title", CreatePinInput{Image: "https://example.com/a.jpg"}},
		{"missing image", CreatePinInput{Title: "a pin"}},
		{"bad tag", CreatePinInput{Title: "a pin", Image: "https://example.com/a.jpg", Tags: []string{`no"quotes`}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePin(context.Background(), 1, tt.input)
			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestCreatePinExternalURL(t *testing.T) {
	svc, pins, _, _ := newFeedFixture()
	pins.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Pin) bool {
		return p.Title == "Trail views" && p.ImageURL == "https://example.com/a.jpg" && p.CreatorID == uint(1)
	})).Return(nil)
	pins.On("GetByID", mock.Anything, uint(0), uint(1)).
		Return(&models.Pin{Title: "Trail views"}, nil)

	pin, err := svc.CreatePin(context.Background(), 1, CreatePinInput{
		Title: "Trail views",
		Image: "https://example.com/a.jpg",
		Tags:  []string{"Hiking", "hiking"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Trail views", pin.Title)
	pins.AssertExpectations(t)
}
