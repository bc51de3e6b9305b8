package repository

import (
	"context"

	"pinboard/internal/cache"
	"pinboard/internal/models"
	"pinboard/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository defines data access for follow edges between users.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID uint) error
	Delete(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	FollowerCount(ctx context.Context, userID uint) (int64, error)
	FollowingCount(ctx context.Context, userID uint) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository backed by GORM.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followingID uint) error {
	defer observability.TrackQuery("insert", "follows")()

	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("already following this user")
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followingID)
	observability.EngagementEvents.WithLabelValues("follow", "create").Inc()
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	defer observability.TrackQuery("delete", "follows")()

	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundMessage("not following this user")
	}

	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followingID)
	observability.EngagementEvents.WithLabelValues("follow", "delete").Inc()
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
