package models

import "time"

// PrayerTimes is the singleton timetable blob together with the digest it was
// published under. Data is nil when the caller's digest is still current.
// Table: prayer_times (at most one row)
type PrayerTimes struct {
	Data      []byte    `gorm:"column:data" json:"data,omitempty" cbor:"1,keyasint,omitempty"`
	Hash      string    `gorm:"column:hash;size:64;not null" json:"hash" cbor:"2,keyasint"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at" cbor:"3,keyasint,omitempty"`
}

func (PrayerTimes) TableName() string {
	return "prayer_times"
}

// Unchanged reports whether the tier answered "your digest still matches".
func (p PrayerTimes) Unchanged() bool {
	return p.Data == nil
}
