package dto

import "time"

// GetImamQuestionsRequest filters the public listing of answered questions.
// Unknown schools of thought are ignored rather than rejected.
type GetImamQuestionsRequest struct {
	Topic           *string `query:"topic" validate:"omitempty,min=2"`
	SchoolOfThought *string `query:"schoolOfThought"`
}

// AdminGetImamQuestionsRequest adds the answered/unanswered status filter.
type AdminGetImamQuestionsRequest struct {
	Status          *string `query:"status"`
	Topic           *string `query:"topic" validate:"omitempty,min=2"`
	SchoolOfThought *string `query:"schoolOfThought"`
}

type Answer struct {
	ImamName     string    `json:"imamName" validate:"required,min=2,max=255"`
	Text         string    `json:"text" validate:"required,min=1"`
	DateAnswered time.Time `json:"dateAnswered"`
}

type ImamQuestionDTO struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Topic           string    `json:"topic"`
	SchoolOfThought *string   `json:"schoolOfThought,omitempty"`
	Description     string    `json:"description"`
	DateOfQuestion  time.Time `json:"dateOfQuestion"`
	Answer          *Answer   `json:"answer,omitempty"`
}

type GetImamQuestionsResponse struct {
	Questions []ImamQuestionDTO `json:"questions"`
}

type InsertQuestionRequest struct {
	Title           string  `json:"title" validate:"required,min=4,max=255"`
	Topic           string  `json:"topic" validate:"required,min=2,max=255"`
	SchoolOfThought *string `json:"schoolOfThought,omitempty" validate:"omitempty,oneof=Hanafi Shaafi Maliki Hanbali"`
	Description     string  `json:"description" validate:"required,min=1"`
}

type AnswerQuestionRequest struct {
	QuestionID int    `json:"-"`
	Answer     Answer `json:"answer" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
