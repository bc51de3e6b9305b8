package models

import "time"

// Like represents a user's like on a pin.
// The combination of UserID and PinID must be unique; the database
// constraint is the sole arbiter of duplicates.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_pin" json:"user_id"`
	PinID     uint      `gorm:"not null;uniqueIndex:idx_like_user_pin" json:"pin_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Pin  Pin  `gorm:"foreignKey:PinID;constraint:OnDelete:CASCADE" json:"-"`
}

// Save represents a user's bookmark of a pin. Same shape as Like,
// semantically "saved to favorites".
type Save struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_save_user_pin" json:"user_id"`
	PinID     uint      `gorm:"not null;uniqueIndex:idx_save_user_pin" json:"pin_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Pin  Pin  `gorm:"foreignKey:PinID;constraint:OnDelete:CASCADE" json:"-"`
}
