package dto

import "time"

type AnnouncementDTO struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
	Image       *string   `json:"image,omitempty"`
	Author      string    `json:"author"`
}

type GetAnnouncementsResponse struct {
	Announcements []AnnouncementDTO `json:"announcements"`
}

type PostAnnouncementRequest struct {
	Title       string  `json:"title" validate:"required,min=4,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
	Author      string  `json:"author" validate:"required,min=2,max=255"`
}

type EditAnnouncementRequest struct {
	ID          int     `json:"id" validate:"gte=0"`
	Title       string  `json:"title" validate:"required,min=4,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
	Author      string  `json:"author" validate:"required,min=2,max=255"`
}
