// Package service holds business logic between handlers and repositories.
package service

import (
	"context"

	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// Visibility describes what a viewer may see of a target user.
type Visibility struct {
	CanViewFull  bool
	IsFollowing  bool
	IsOwnProfile bool
}

// VisibilityResolver decides profile and pin visibility between two users.
type VisibilityResolver struct {
	follows repository.FollowRepository
}

// NewVisibilityResolver creates a resolver backed by the follow repository.
func NewVisibilityResolver(follows repository.FollowRepository) *VisibilityResolver {
	return &VisibilityResolver{follows: follows}
}

// Resolve computes the viewer's visibility of target. A viewer ID of 0
// means anonymous. Owners always see their own full profile; private
// profiles open up to followers.
func (r *VisibilityResolver) Resolve(ctx context.Context, viewerID uint, target *models.User) (Visibility, error) {
	if viewerID != 0 && viewerID == target.ID {
		return Visibility{CanViewFull: true, IsOwnProfile: true}, nil
	}

	var vis Visibility
	if viewerID != 0 {
		following, err := r.follows.IsFollowing(ctx, viewerID, target.ID)
		if err != nil {
			return Visibility{}, err
		}
		vis.IsFollowing = following
	}

	vis.CanViewFull = !target.IsPrivate() || vis.IsFollowing
	return vis, nil
}
