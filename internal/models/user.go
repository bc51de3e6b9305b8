// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfileVisibility controls who may see a user's full profile and pins.
type ProfileVisibility string

const (
	// ProfileVisibilityPublic makes the profile visible to everyone.
	ProfileVisibilityPublic ProfileVisibility = "public"
	// ProfileVisibilityPrivate restricts the profile to the owner and followers.
	ProfileVisibilityPrivate ProfileVisibility = "private"
)

// User represents a user account in the Pinboard application.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`

	ProfileVisibility  ProfileVisibility `gorm:"type:varchar(10);default:'public'" json:"profile_visibility"`
	SearchVisibility   bool              `gorm:"default:true" json:"search_visibility"`
	ActivityVisibility bool              `gorm:"default:true" json:"activity_visibility"`

	EmailNotifications  bool `gorm:"default:true" json:"email_notifications"`
	PushNotifications   bool `gorm:"default:true" json:"push_notifications"`
	LikeNotifications   bool `gorm:"default:true" json:"like_notifications"`
	FollowNotifications bool `gorm:"default:true" json:"follow_notifications"`

	// PinsCount, FollowersCount, FollowingCount and IsFollowing are not
	// persisted; they are computed at query time by the repositories.
	PinsCount      int64 `gorm:"->" json:"pins_count"`
	FollowersCount int64 `gorm:"->" json:"followers_count"`
	FollowingCount int64 `gorm:"->" json:"following_count"`
	IsFollowing    bool  `gorm:"->" json:"is_following"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Pins []Pin `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"pins,omitempty"`
}

// IsPrivate reports whether the profile is restricted to owner and followers.
func (u *User) IsPrivate() bool {
	return u.ProfileVisibility == ProfileVisibilityPrivate
}

// UserProfile is the viewer-relative projection of a user returned by the
// profile endpoint. Private profiles viewed by a non-owner non-follower get
// the redacted form: no bio, no email, and a pin count forced to zero.
// IsPrivate signals that the viewer received the redacted form, not the
// stored visibility setting.
type UserProfile struct {
	ID                uint              `json:"id"`
	Name              string            `json:"name"`
	Username          string            `json:"username"`
	Email             string            `json:"email,omitempty"`
	Avatar            string            `json:"avatar"`
	Bio               string            `json:"bio,omitempty"`
	ProfileVisibility ProfileVisibility `json:"profile_visibility"`
	IsPrivate         bool              `json:"is_private"`
	IsFollowing       bool              `json:"is_following"`
	IsOwnProfile      bool              `json:"is_own_profile"`
	PinsCount         int64             `json:"pins_count"`
	FollowersCount    int64             `json:"followers_count"`
	FollowingCount    int64             `json:"following_count"`
	CreatedAt         *time.Time        `json:"created_at,omitempty"`
}

// UserSummary is the narrow projection returned by user search. Account
// settings and notification preferences never appear in search results.
type UserSummary struct {
	ID                uint              `json:"id"`
	Name              string            `json:"name"`
	Username          string            `json:"username"`
	Email             string            `json:"email"`
	Avatar            string            `json:"avatar"`
	Bio               string            `json:"bio"`
	ProfileVisibility ProfileVisibility `json:"profile_visibility"`
	PinsCount         int64             `json:"pins_count"`
	FollowersCount    int64             `json:"followers_count"`
	FollowingCount    int64             `json:"following_count"`
	IsFollowing       bool              `json:"is_following"`
}

// Summarize builds the search projection of a user.
func (u *User) Summarize() UserSummary {
	return UserSummary{
		ID:                u.ID,
		Name:              u.Name,
		Username:          u.Username,
		Email:             u.Email,
		Avatar:            u.Avatar,
		Bio:               u.Bio,
		ProfileVisibility: u.ProfileVisibility,
		PinsCount:         u.PinsCount,
		FollowersCount:    u.FollowersCount,
		FollowingCount:    u.FollowingCount,
		IsFollowing:       u.IsFollowing,
	}
}
