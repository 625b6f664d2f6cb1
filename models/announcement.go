package models

import "time"

// Announcement is a notice posted by a registered user.
// Table: announcements
// The author must exist in users; post/edit raise otherwise.
type Announcement struct {
	ID          int       `gorm:"primaryKey;column:id" json:"id" cbor:"1,keyasint"`
	Title       string    `gorm:"size:255;not null;uniqueIndex:uk_announcements_title" json:"title" cbor:"2,keyasint"`
	Description *string   `gorm:"type:text" json:"description,omitempty" cbor:"3,keyasint,omitempty"`
	LastUpdated time.Time `gorm:"column:last_updated;not null" json:"last_updated" cbor:"4,keyasint"`
	Image       *string   `gorm:"column:image;size:512" json:"image,omitempty" cbor:"5,keyasint,omitempty"`
	Author      string    `gorm:"size:255;not null" json:"author" cbor:"6,keyasint"`
}

func (Announcement) TableName() string {
	return "announcements"
}
