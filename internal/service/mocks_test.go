package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetWithStats(ctx context.Context, id, viewerID uint) (*models.User, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, viewerID uint, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(ctx, query, viewerID, limit, offset)
	var users []models.User
	if args.Get(0) != nil {
		users = args.Get(0).([]models.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

type MockPinRepository struct {
	mock.Mock
}

func (m *MockPinRepository) Create(ctx context.Context, pin *models.Pin) error {
	args := m.Called(ctx, pin)
	return args.Error(0)
}

func (m *MockPinRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Pin, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pin), args.Error(1)
}

func (m *MockPinRepository) List(ctx context.Context, filter *repository.FeedFilter, viewerID uint, limit, offset int) ([]models.Pin, int64, error) {
	args := m.Called(ctx, filter, viewerID, limit, offset)
	var pins []models.Pin
	if args.Get(0) != nil {
		pins = args.Get(0).([]models.Pin)
	}
	return pins, args.Get(1).(int64), args.Error(2)
}

func (m *MockPinRepository) ListByCreator(ctx context.Context, creatorID uint) ([]models.Pin, error) {
	args := m.Called(ctx, creatorID)
	var pins []models.Pin
	if args.Get(0) != nil {
		pins = args.Get(0).([]models.Pin)
	}
	return pins, args.Error(1)
}

func (m *MockPinRepository) Like(ctx context.Context, userID, pinID uint) error {
	args := m.Called(ctx, userID, pinID)
	return args.Error(0)
}

func (m *MockPinRepository) Unlike(ctx context.Context, userID, pinID uint) error {
	args := m.Called(ctx, userID, pinID)
	return args.Error(0)
}

func (m *MockPinRepository) Save(ctx context.Context, userID, pinID uint) error {
	args := m.Called(ctx, userID, pinID)
	return args.Error(0)
}

func (m *MockPinRepository) Unsave(ctx context.Context, userID, pinID uint) error {
	args := m.Called(ctx, userID, pinID)
	return args.Error(0)
}

func (m *MockPinRepository) LikeCount(ctx context.Context, pinID uint) (int64, error) {
	args := m.Called(ctx, pinID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPinRepository) SaveCount(ctx context.Context, pinID uint) (int64, error) {
	args := m.Called(ctx, pinID)
	return args.Get(0).(int64), args.Error(1)
}

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, followerID, followingID uint) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
