package dto

import "time"

// EventDTO is the wire form of an event. Details and contact information are
// nested the way clients render them.
type EventDTO struct {
	ID           int          `json:"id" validate:"gte=0"`
	Title        string       `json:"title" validate:"required,min=4,max=255"`
	Description  *string      `json:"description,omitempty" validate:"omitempty,min=4"`
	Date         time.Time    `json:"date" validate:"required"`
	EventDetails EventDetails `json:"eventDetails" validate:"required"`
}

type EventDetails struct {
	EventType       string         `json:"eventType" validate:"required,oneof=talk social class"`
	EventRecurrence string         `json:"eventRecurrence" validate:"required,oneof=one-off daily weekly fortnightly monthly"`
	EventStatus     string         `json:"eventStatus" validate:"required,oneof=confirmed cancelled"`
	AgeRange        *AgeRange      `json:"ageRange,omitempty" validate:"omitempty"`
	ImageURL        *string        `json:"imageUrl,omitempty" validate:"omitempty,url"`
	ContactDetails  ContactDetails `json:"contactDetails" validate:"required"`
}

// AgeRange is only emitted when both bounds are stored.
type AgeRange struct {
	MinimumAge int `json:"minimumAge" validate:"gte=0,lte=255"`
	MaximumAge int `json:"maximumAge" validate:"gtefield=MinimumAge,lte=255"`
}

type ContactDetails struct {
	FullName string `json:"fullName" validate:"required,min=3,max=255"`
	// Title is accepted for display purposes and is not stored.
	Title       *string `json:"title,omitempty" validate:"omitempty,max=16"`
	PhoneNumber string  `json:"phoneNumber" validate:"required,max=32"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
}

type UpsertEventRequest struct {
	Event EventDTO `json:"event" validate:"required"`
}

type GetEventsResponse struct {
	Events []EventDTO `json:"events"`
}

type DeleteEventResponse struct {
	Message  string  `json:"message"`
	ImageURL *string `json:"imageUrl,omitempty"`
}
