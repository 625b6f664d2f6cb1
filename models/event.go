// Package models contains the storage forms of the mosque-management entities
package models

import "time"

type EventType string

const (
	EventTypeTalk   EventType = "talk"
	EventTypeSocial EventType = "social"
	EventTypeClass  EventType = "class"
)

type EventRecurrence string

const (
	EventRecurrenceOneOff      EventRecurrence = "one-off"
	EventRecurrenceDaily       EventRecurrence = "daily"
	EventRecurrenceWeekly      EventRecurrence = "weekly"
	EventRecurrenceFortnightly EventRecurrence = "fortnightly"
	EventRecurrenceMonthly     EventRecurrence = "monthly"
)

type EventStatus string

const (
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is a single row returned by get_events.
// Table: events
// Contact details are stored inline; the age range is two nullable bounds.
type Event struct {
	ID          int             `gorm:"primaryKey;column:id" json:"id" cbor:"1,keyasint"`
	Title       string          `gorm:"size:255;not null" json:"title" cbor:"2,keyasint"`
	Description *string         `gorm:"type:text" json:"description,omitempty" cbor:"3,keyasint,omitempty"`
	Date        time.Time       `gorm:"column:date;not null" json:"date" cbor:"4,keyasint"`
	Type        EventType       `gorm:"column:type;size:16;not null" json:"type" cbor:"5,keyasint"`
	Recurrence  EventRecurrence `gorm:"column:recurrence;size:16;not null" json:"recurrence" cbor:"6,keyasint"`
	Status      EventStatus     `gorm:"column:status;size:16;not null" json:"status" cbor:"7,keyasint"`
	MinimumAge  *int            `gorm:"column:minimum_age" json:"minimum_age,omitempty" cbor:"8,keyasint,omitempty"`
	MaximumAge  *int            `gorm:"column:maximum_age" json:"maximum_age,omitempty" cbor:"9,keyasint,omitempty"`
	ImageURL    *string         `gorm:"column:image_url;size:512" json:"image_url,omitempty" cbor:"10,keyasint,omitempty"`
	FullName    string          `gorm:"column:full_name;size:255;not null" json:"full_name" cbor:"11,keyasint"`
	PhoneNumber string          `gorm:"column:phone_number;size:32;not null" json:"phone_number" cbor:"12,keyasint"`
	Email       *string         `gorm:"column:email;size:255" json:"email,omitempty" cbor:"13,keyasint,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

func ParseEventType(s string) (EventType, bool) {
	switch t := EventType(s); t {
	case EventTypeTalk, EventTypeSocial, EventTypeClass:
		return t, true
	}
	return "", false
}

func ParseEventRecurrence(s string) (EventRecurrence, bool) {
	switch r := EventRecurrence(s); r {
	case EventRecurrenceOneOff, EventRecurrenceDaily, EventRecurrenceWeekly,
		EventRecurrenceFortnightly, EventRecurrenceMonthly:
		return r, true
	}
	return "", false
}

func ParseEventStatus(s string) (EventStatus, bool) {
	switch st := EventStatus(s); st {
	case EventStatusConfirmed, EventStatusCancelled:
		return st, true
	}
	return "", false
}
