package models

import "time"

// User is a registered member of staff. Announcements name their author by
// username.
// Table: users
type User struct {
	ID        int       `gorm:"primaryKey;column:id" json:"id"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Username  string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
