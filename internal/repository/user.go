package repository

import (
	"context"
	"errors"
	"strings"

	"pinboard/internal/cache"
	"pinboard/internal/models"
	"pinboard/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetWithStats(ctx context.Context, id, viewerID uint) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, viewerID uint, limit, offset int) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository backed by GORM.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("insert", "users")()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("username or email already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no account matches.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByUsername returns (nil, nil) when no account matches.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// applyUserStats attaches computed relationship columns to a user query.
func applyUserStats(db *gorm.DB, viewerID uint) *gorm.DB {
	return db.Select(`users.*,
		(SELECT COUNT(*) FROM pins WHERE pins.creator_id = users.id AND pins.deleted_at IS NULL) AS pins_count,
		(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id) AS followers_count,
		(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) AS following_count,
		EXISTS(SELECT 1 FROM follows WHERE follows.following_id = users.id AND follows.follower_id = ?) AS is_following`,
		viewerID)
}

func (r *userRepository) GetWithStats(ctx context.Context, id, viewerID uint) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	err := applyUserStats(r.db.WithContext(ctx).Model(&models.User{}), viewerID).
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("update", "users")()

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("username or email already taken")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// Delete removes the account and everything hanging off it. Engagement
// edges are removed explicitly so the behavior does not depend on the
// database enforcing cascades.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "users")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM likes WHERE pin_id IN (SELECT id FROM pins WHERE creator_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM saves WHERE pin_id IN (SELECT id FROM pins WHERE creator_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Save{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("creator_id = ?", id).Delete(&models.Pin{}).Error; err != nil {
			return err
		}

		result := tx.Unscoped().Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", id)
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, id)
	return nil
}

// Search finds users by name or username, excluding accounts that opted out
// of search visibility. Results are ordered by name for stable pagination.
func (r *userRepository) Search(ctx context.Context, query string, viewerID uint, limit, offset int) ([]models.User, int64, error) {
	defer observability.TrackQuery("select", "users")()

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	match := func(db *gorm.DB) *gorm.DB {
		return db.Model(&models.User{}).
			Where("search_visibility = ?", true).
			Where("(LOWER(username) LIKE ? OR LOWER(name) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := match(r.db.WithContext(ctx)).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	err := applyUserStats(match(r.db.WithContext(ctx)), viewerID).
		Order("users.name ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return users, total, nil
}
