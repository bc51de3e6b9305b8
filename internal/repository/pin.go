package repository

import (
	"context"
	"errors"

	"pinboard/internal/cache"
	"pinboard/internal/models"
	"pinboard/internal/observability"

	"gorm.io/gorm"
)

// PinRepository defines data access for pins and their engagement edges.
type PinRepository interface {
	Create(ctx context.Context, pin *models.Pin) error
	GetByID(ctx context.Context, id, viewerID uint) (*models.Pin, error)
	List(ctx context.Context, filter *FeedFilter, viewerID uint, limit, offset int) ([]models.Pin, int64, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]models.Pin, error)
	Like(ctx context.Context, userID, pinID uint) error
	Unlike(ctx context.Context, userID, pinID uint) error
	Save(ctx context.Context, userID, pinID uint) error
	Unsave(ctx context.Context, userID, pinID uint) error
	LikeCount(ctx context.Context, pinID uint) (int64, error)
	SaveCount(ctx context.Context, pinID uint) (int64, error)
}

type pinRepository struct {
	db *gorm.DB
}

// NewPinRepository creates a new pin repository backed by GORM.
func NewPinRepository(db *gorm.DB) PinRepository {
	return &pinRepository{db: db}
}

// applyPinDetails attaches computed engagement columns to a pin query:
// total like/save counts plus the viewer's own edges. A viewer ID of 0
// (anonymous) matches no edges.
func applyPinDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	return db.Select(`pins.*,
		(SELECT COUNT(*) FROM likes WHERE likes.pin_id = pins.id) AS likes_count,
		(SELECT COUNT(*) FROM saves WHERE saves.pin_id = pins.id) AS saves_count,
		EXISTS(SELECT 1 FROM likes WHERE likes.pin_id = pins.id AND likes.user_id = ?) AS is_liked,
		EXISTS(SELECT 1 FROM saves WHERE saves.pin_id = pins.id AND saves.user_id = ?) AS is_saved`,
		viewerID, viewerID)
}

func (r *pinRepository) Create(ctx context.Context, pin *models.Pin) error {
	defer observability.TrackQuery("insert", "pins")()

	if err := r.db.WithContext(ctx).Create(pin).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, pin.CreatorID)
	return nil
}

func (r *pinRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Pin, error) {
	defer observability.TrackQuery("select", "pins")()

	var pin models.Pin

	fetch := func() error {
		return applyPinDetails(r.db.WithContext(ctx).Model(&models.Pin{}), viewerID).
			Preload("Creator").
			First(&pin, id).Error
	}

	var err error
	if viewerID == 0 {
		// Anonymous views carry no per-viewer columns, so the row is cacheable.
		err = cache.Aside(ctx, cache.PinKey(id), &pin, cache.PinTTL, fetch)
	} else {
		err = fetch()
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Pin", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &pin, nil
}

func (r *pinRepository) List(ctx context.Context, filter *FeedFilter, viewerID uint, limit, offset int) ([]models.Pin, int64, error) {
	defer observability.TrackQuery("select", "pins")()

	if filter == nil {
		filter = &FeedFilter{}
	}

	// Count on the bare filtered query; the computed columns are only
	// needed for the page itself.
	var total int64
	countQuery := filter.Apply(r.db.WithContext(ctx).Model(&models.Pin{}))
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var pins []models.Pin
	listQuery := applyPinDetails(filter.Apply(r.db.WithContext(ctx).Model(&models.Pin{})), viewerID)
	err := listQuery.
		Preload("Creator").
		Order("pins.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&pins).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return pins, total, nil
}

func (r *pinRepository) ListByCreator(ctx context.Context, creatorID uint) ([]models.Pin, error) {
	defer observability.TrackQuery("select", "pins")()

	var pins []models.Pin
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Find(&pins).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return pins, nil
}

func (r *pinRepository) ensureExists(ctx context.Context, pinID uint) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Pin{}).Where("id = ?", pinID).Count(&count).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Pin", pinID)
	}
	return nil
}

func (r *pinRepository) Like(ctx context.Context, userID, pinID uint) error {
	defer observability.TrackQuery("insert", "likes")()

	if err := r.ensureExists(ctx, pinID); err != nil {
		return err
	}

	like := &models.Like{UserID: userID, PinID: pinID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("pin already liked")
		}
		return models.NewInternalError(err)
	}

	cache.InvalidatePin(ctx, pinID)
	observability.EngagementEvents.WithLabelValues("like", "create").Inc()
	return nil
}

func (r *pinRepository) Unlike(ctx context.Context, userID, pinID uint) error {
	defer observability.TrackQuery("delete", "likes")()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND pin_id = ?", userID, pinID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundMessage("like not found")
	}

	cache.InvalidatePin(ctx, pinID)
	observability.EngagementEvents.WithLabelValues("like", "delete").Inc()
	return nil
}

func (r *pinRepository) Save(ctx context.Context, userID, pinID uint) error {
	defer observability.TrackQuery("insert", "saves")()

	if err := r.ensureExists(ctx, pinID); err != nil {
		return err
	}

	save := &models.Save{UserID: userID, PinID: pinID}
	if err := r.db.WithContext(ctx).Create(save).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("pin already saved")
		}
		return models.NewInternalError(err)
	}

	cache.InvalidatePin(ctx, pinID)
	observability.EngagementEvents.WithLabelValues("save", "create").Inc()
	return nil
}

func (r *pinRepository) Unsave(ctx context.Context, userID, pinID uint) error {
	defer observability.TrackQuery("delete", "saves")()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND pin_id = ?", userID, pinID).
		Delete(&models.Save{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundMessage("save not found")
	}

	cache.InvalidatePin(ctx, pinID)
	observability.EngagementEvents.WithLabelValues("save", "delete").Inc()
	return nil
}

func (r *pinRepository) LikeCount(ctx context.Context, pinID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("pin_id = ?", pinID).Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *pinRepository) SaveCount(ctx context.Context, pinID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Save{}).Where("pin_id = ?", pinID).Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
