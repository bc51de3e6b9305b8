package service

import (
	"context"
	"strconv"
	"strings"

	"pinboard/internal/models"
	"pinboard/internal/repository"
	"pinboard/internal/validation"
)

const (
	// DefaultFeedLimit is the page size when the client does not ask for one.
	DefaultFeedLimit = 50
	// MaxFeedLimit caps client-requested page sizes.
	MaxFeedLimit = 100
)

// FeedParams are the query parameters of a feed request.
type FeedParams struct {
	Query         string
	Tag           string
	OwnerRef      string // numeric user ID, or email when it contains '@'
	FavoritesOnly bool
	ViewerID      uint
	Page          int
	Limit         int
}

// FeedPage is one page of feed results with pagination metadata.
type FeedPage struct {
	Pins       []models.Pin
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CreatePinInput is the payload for creating a pin. Image accepts either a
// base64 data URL (uploaded through the image service) or an external URL.
type CreatePinInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
	Tags        []string `json:"tags"`
}

// PinService implements feed queries and pin lifecycle on top of the
// repositories.
type PinService struct {
	pins       repository.PinRepository
	users      repository.UserRepository
	visibility *VisibilityResolver
	images     *ImageService
}

// NewPinService wires a pin service.
func NewPinService(pins repository.PinRepository, users repository.UserRepository, visibility *VisibilityResolver, images *ImageService) *PinService {
	return &PinService{pins: pins, users: users, visibility: visibility, images: images}
}

// Feed runs a visibility-filtered pin query. Owner references that do not
// resolve, and owners the viewer may not see, degrade to an empty page
// rather than an error.
func (s *PinService) Feed(ctx context.Context, p FeedParams) (*FeedPage, error) {
	filter := &repository.FeedFilter{}

	if q := strings.TrimSpace(p.Query); q != "" {
		filter.Add(repository.TextMatch{Query: q})
	}
	if tag := strings.TrimSpace(p.Tag); tag != "" {
		filter.Add(repository.TagMatch{Tag: tag})
	}

	if p.OwnerRef != "" {
		owner, err := s.resolveOwner(ctx, p.OwnerRef)
		if err != nil {
			return nil, err
		}

		switch {
		case owner == nil:
			filter.Add(repository.SentinelEmpty{})
		default:
			vis, err := s.visibility.Resolve(ctx, p.ViewerID, owner)
			if err != nil {
				return nil, err
			}
			switch {
			case !vis.CanViewFull:
				filter.Add(repository.SentinelEmpty{})
			case p.FavoritesOnly:
				filter.Add(repository.OwnerSaves{UserID: owner.ID})
			default:
				filter.Add(repository.OwnerPins{UserID: owner.ID})
			}
		}
	} else if p.FavoritesOnly {
		// Favorites without an owner means the viewer's own saves.
		if p.ViewerID == 0 {
			filter.Add(repository.SentinelEmpty{})
		} else {
			filter.Add(repository.OwnerSaves{UserID: p.ViewerID})
		}
	}

	page, limit := normalizePage(p.Page, p.Limit, DefaultFeedLimit)
	offset := (page - 1) * limit

	pins, total, err := s.pins.List(ctx, filter, p.ViewerID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Pins:       pins,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// resolveOwner maps an owner reference to a user. References containing '@'
// resolve by email, everything else by numeric ID. Unresolvable references
// return (nil, nil).
func (s *PinService) resolveOwner(ctx context.Context, ref string) (*models.User, error) {
	if strings.Contains(ref, "@") {
		return s.users.GetByEmail(ctx, ref)
	}

	id, err := strconv.ParseUint(ref, 10, 32)
	if err != nil {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, uint(id))
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// CreatePin validates the input, uploads inline image data and stores the
// pin. Returns the stored pin with computed engagement columns.
func (s *PinService) CreatePin(ctx context.Context, creatorID uint, input CreatePinInput) (*models.Pin, error) {
	if err := validation.ValidatePinTitle(input.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePinDescription(input.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	tags := validation.NormalizeTags(input.Tags)
	if err := validation.ValidateTags(tags); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	imageURL := strings.TrimSpace(input.Image)
	if imageURL == "" {
		return nil, models.NewValidationError("image is required")
	}
	if IsDataURL(imageURL) {
		uploaded, err := s.images.Upload(ctx, imageURL)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		imageURL = uploaded
	}

	pin := &models.Pin{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ImageURL:    imageURL,
		Link:        strings.TrimSpace(input.Link),
		Tags:        tags,
		CreatorID:   creatorID,
	}
	if err := s.pins.Create(ctx, pin); err != nil {
		return nil, err
	}

	return s.pins.GetByID(ctx, pin.ID, creatorID)
}

// GetPin returns one pin with viewer-relative engagement columns.
func (s *PinService) GetPin(ctx context.Context, id, viewerID uint) (*models.Pin, error) {
	return s.pins.GetByID(ctx, id, viewerID)
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
