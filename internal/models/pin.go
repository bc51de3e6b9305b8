// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Tags is a pin's tag set, stored as a JSON-encoded string column.
// The JSON encoding means a quoted-substring LIKE match is an exact
// membership test as long as tags contain no double quotes, which
// validation enforces.
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}
}

// Contains reports whether the tag set includes tag.
func (t Tags) Contains(tag string) bool {
	for _, existing := range t {
		if existing == tag {
			return true
		}
	}
	return false
}

// Pin represents a shared image post.
type Pin struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"not null" json:"image_url"`
	Link        string `json:"link"`
	Tags        Tags   `gorm:"type:text" json:"tags"`
	CreatorID   uint   `gorm:"not null;index" json:"creator_id"`
	Creator     User   `gorm:"foreignKey:CreatorID" json:"creator"`

	// LikesCount and SavesCount are not persisted; computed at query time.
	LikesCount int64 `gorm:"->" json:"likes_count"`
	SavesCount int64 `gorm:"->" json:"saves_count"`
	// IsLiked and IsSaved indicate the requesting viewer's edges (computed).
	IsLiked bool `gorm:"->" json:"is_liked"`
	IsSaved bool `gorm:"->" json:"is_saved"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
