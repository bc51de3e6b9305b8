package service

import (
	"context"
	"strings"

	"pinboard/internal/middleware"
	"pinboard/internal/models"
	"pinboard/internal/repository"
	"pinboard/internal/validation"
)

const (
	// DefaultSearchLimit is the user search page size when none is requested.
	DefaultSearchLimit = 20
	// MinSearchQueryLength gates user search; shorter queries return an
	// empty page instead of scanning the table.
	MinSearchQueryLength = 2
)

// UpdateProfileInput carries partial profile updates. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

// UpdatePrivacyInput carries partial privacy settings updates.
type UpdatePrivacyInput struct {
	ProfileVisibility  *string `json:"profile_visibility"`
	SearchVisibility   *bool   `json:"search_visibility"`
	ActivityVisibility *bool   `json:"activity_visibility"`
}

// UpdateNotificationsInput carries partial notification preference updates.
type UpdateNotificationsInput struct {
	EmailNotifications  *bool `json:"email_notifications"`
	PushNotifications   *bool `json:"push_notifications"`
	LikeNotifications   *bool `json:"like_notifications"`
	FollowNotifications *bool `json:"follow_notifications"`
}

// UserPage is one page of user search results.
type UserPage struct {
	Users      []models.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService implements profile, settings and account lifecycle logic.
type UserService struct {
	users      repository.UserRepository
	pins       repository.PinRepository
	visibility *VisibilityResolver
	images     *ImageService
}

// NewUserService wires a user service.
func NewUserService(users repository.UserRepository, pins repository.PinRepository, visibility *VisibilityResolver, images *ImageService) *UserService {
	return &UserService{users: users, pins: pins, visibility: visibility, images: images}
}

// GetProfile returns the viewer-relative projection of a user. Private
// profiles viewed by outsiders are redacted: no email, bio or join date,
// and the pin count reads zero.
func (s *UserService) GetProfile(ctx context.Context, targetID, viewerID uint) (*models.UserProfile, error) {
	user, err := s.users.GetWithStats(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}

	vis, err := s.visibility.Resolve(ctx, viewerID, user)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		ID:                user.ID,
		Name:              user.Name,
		Username:          user.Username,
		Avatar:            user.Avatar,
		ProfileVisibility: user.ProfileVisibility,
		IsPrivate:         !vis.CanViewFull,
		IsFollowing:       vis.IsFollowing,
		IsOwnProfile:      vis.IsOwnProfile,
		FollowersCount:    user.FollowersCount,
		FollowingCount:    user.FollowingCount,
	}

	if !vis.CanViewFull {
		return profile, nil
	}

	profile.Bio = user.Bio
	profile.PinsCount = user.PinsCount
	createdAt := user.CreatedAt
	profile.CreatedAt = &createdAt
	if vis.IsOwnProfile {
		profile.Email = user.Email
	}
	return profile, nil
}

// GetSettings returns the full account record for the owner.
func (s *UserService) GetSettings(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial profile update. Username changes are
// validated and checked for uniqueness before writing.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		username := strings.TrimSpace(*input.Username)
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewConflictError("username already taken")
		}
		user.Username = username
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		avatar := *input.Avatar
		if IsDataURL(avatar) {
			uploaded, err := s.images.Upload(ctx, avatar)
			if err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			avatar = uploaded
		}
		user.Avatar = avatar
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePrivacy applies a partial privacy settings update.
func (s *UserService) UpdatePrivacy(ctx context.Context, userID uint, input UpdatePrivacyInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.ProfileVisibility != nil {
		switch models.ProfileVisibility(*input.ProfileVisibility) {
		case models.ProfileVisibilityPublic, models.ProfileVisibilityPrivate:
			user.ProfileVisibility = models.ProfileVisibility(*input.ProfileVisibility)
		default:
			return nil, models.NewValidationError("profile_visibility must be public or private")
		}
	}
	if input.SearchVisibility != nil {
		user.SearchVisibility = *input.SearchVisibility
	}
	if input.ActivityVisibility != nil {
		user.ActivityVisibility = *input.ActivityVisibility
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateNotifications applies a partial notification preference update.
func (s *UserService) UpdateNotifications(ctx context.Context, userID uint, input UpdateNotificationsInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}
	if input.PushNotifications != nil {
		user.PushNotifications = *input.PushNotifications
	}
	if input.LikeNotifications != nil {
		user.LikeNotifications = *input.LikeNotifications
	}
	if input.FollowNotifications != nil {
		user.FollowNotifications = *input.FollowNotifications
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar uploads a new avatar image and replaces the stored one,
// deleting the previous blob best-effort.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, imageData string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.images.Upload(ctx, imageData)
	if err != nil {
		return "", models.NewValidationError(err.Error())
	}

	old := user.Avatar
	user.Avatar = url
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}

	if old != "" && old != url {
		if err := s.images.Delete(ctx, old); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to delete old avatar", "url", old, "error", err)
		}
	}
	return url, nil
}

// DeleteAccount removes the user and all dependent rows, then cleans up
// stored image blobs best-effort. Blob cleanup failures are logged, not
// surfaced; the account deletion itself is the contract.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	pins, err := s.pins.ListByCreator(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	for _, pin := range pins {
		if err := s.images.Delete(ctx, pin.ImageURL); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to delete pin image", "url", pin.ImageURL, "error", err)
		}
	}
	if user.Avatar != "" {
		if err := s.images.Delete(ctx, user.Avatar); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to delete avatar", "url", user.Avatar, "error", err)
		}
	}

	middleware.Logger.InfoContext(ctx, "account deleted", "user_id", userID)
	return nil
}

// SearchUsers finds users by name or username. Queries shorter than two
// characters return an empty page without touching the database.
func (s *UserService) SearchUsers(ctx context.Context, query string, viewerID uint, page, limit int) (*UserPage, error) {
	page, limit = normalizePage(page, limit, DefaultSearchLimit)

	query = strings.TrimSpace(query)
	if len(query) < MinSearchQueryLength {
		return &UserPage{Users: []models.User{}, Page: page, Limit: limit}, nil
	}

	offset := (page - 1) * limit
	users, total, err := s.users.Search(ctx, query, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
