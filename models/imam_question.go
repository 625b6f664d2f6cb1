package models

import "time"

type SchoolOfThought string

const (
	SchoolOfThoughtHanafi  SchoolOfThought = "Hanafi"
	SchoolOfThoughtShaafi  SchoolOfThought = "Shaafi"
	SchoolOfThoughtMaliki  SchoolOfThought = "Maliki"
	SchoolOfThoughtHanbali SchoolOfThought = "Hanbali"
)

type QuestionStatus string

const (
	QuestionStatusAnswered   QuestionStatus = "answered"
	QuestionStatusUnanswered QuestionStatus = "unanswered"
)

// ImamQuestion is a question submitted to the imam, with the answer columns
// left null until the imam responds.
// Table: imam_questions
type ImamQuestion struct {
	ID              int              `gorm:"primaryKey;column:id" json:"id" cbor:"1,keyasint"`
	Title           string           `gorm:"size:255;not null" json:"title" cbor:"2,keyasint"`
	Topic           string           `gorm:"size:255;not null;index:idx_imam_questions_topic" json:"topic" cbor:"3,keyasint"`
	SchoolOfThought *SchoolOfThought `gorm:"column:school_of_thought;size:16" json:"school_of_thought,omitempty" cbor:"4,keyasint,omitempty"`
	Description     string           `gorm:"type:text;not null" json:"description" cbor:"5,keyasint"`
	DateOfQuestion  time.Time        `gorm:"column:date_of_question;not null" json:"date_of_question" cbor:"6,keyasint"`
	ImamName        *string          `gorm:"column:imam_name;size:255" json:"imam_name,omitempty" cbor:"7,keyasint,omitempty"`
	Answer          *string          `gorm:"column:answer;type:text" json:"answer,omitempty" cbor:"8,keyasint,omitempty"`
	DateAnswered    *time.Time       `gorm:"column:date_answered" json:"date_answered,omitempty" cbor:"9,keyasint,omitempty"`
}

func (ImamQuestion) TableName() string {
	return "imam_questions"
}

// ImamAnswer is the payload of upsert_imam_answer_to_question.
type ImamAnswer struct {
	QuestionID   int
	ImamName     string
	Text         string
	DateAnswered time.Time
}

func ParseSchoolOfThought(s string) (SchoolOfThought, bool) {
	switch sot := SchoolOfThought(s); sot {
	case SchoolOfThoughtHanafi, SchoolOfThoughtShaafi, SchoolOfThoughtMaliki, SchoolOfThoughtHanbali:
		return sot, true
	}
	return "", false
}

func ParseQuestionStatus(s string) (QuestionStatus, bool) {
	switch st := QuestionStatus(s); st {
	case QuestionStatusAnswered, QuestionStatusUnanswered:
		return st, true
	}
	return "", false
}

// AnsweredQuestionFilter narrows the public listing of answered questions.
type AnsweredQuestionFilter struct {
	Topic           *string
	SchoolOfThought *SchoolOfThought
}

// ImamQuestionFilter narrows the admin listing of all questions.
type ImamQuestionFilter struct {
	Status          *QuestionStatus
	Topic           *string
	SchoolOfThought *SchoolOfThought
}
