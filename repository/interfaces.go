// Package repository provides the two-tier data access layer: a fast
// non-durable tier backed by redis, a durable tier backed by postgres stored
// functions, and the coordinator and router that sequence calls across them.
package repository

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/models"
)

// Tier identifies one side of a two-tier repository.
type Tier int

const (
	TierFast Tier = iota
	TierDurable
)

func (t Tier) String() string {
	switch t {
	case TierFast:
		return "fast"
	case TierDurable:
		return "durable"
	default:
		return "unknown"
	}
}

// Operation names one method shared by both tiers of a feature. Durable
// implementations call the stored function of the same name.
type Operation string

// Events
const (
	OpGetEvents       Operation = "get_events"
	OpUpsertEvent     Operation = "upsert_event"
	OpDeleteEventByID Operation = "delete_event_by_id"
)

// Prayer times
const (
	OpGetPrayerTimes        Operation = "get_prayer_times"
	OpGetUpdatedPrayerTimes Operation = "get_updated_prayer_times"
	OpUpsertPrayerTimes     Operation = "upsert_prayer_times"
)

// Ask the imam
const (
	OpGetAnsweredQuestions                    Operation = "get_answered_imam_questions"
	OpGetAnsweredQuestionsByTopic             Operation = "get_answered_imam_questions_by_topic"
	OpGetAnsweredQuestionsBySchoolOfThought   Operation = "get_answered_imam_questions_by_school_of_thought"
	OpGetAnsweredQuestionsByTopicAndSchool    Operation = "get_answered_imam_questions_by_topic_and_school_of_thought"
	OpGetUnansweredQuestions                  Operation = "get_unanswered_imam_questions"
	OpGetUnansweredQuestionsByTopic           Operation = "get_unanswered_imam_questions_by_topic"
	OpGetUnansweredQuestionsBySchoolOfThought Operation = "get_unanswered_imam_questions_by_school_of_thought"
	OpGetUnansweredQuestionsByTopicAndSchool  Operation = "get_unanswered_imam_questions_by_topic_and_school_of_thought"
	OpGetAllQuestions                         Operation = "get_all_imam_questions"
	OpGetAllQuestionsByTopic                  Operation = "get_all_imam_questions_by_topic"
	OpGetAllQuestionsBySchoolOfThought        Operation = "get_all_imam_questions_by_school_of_thought"
	OpGetAllQuestionsByTopicAndSchool         Operation = "get_all_imam_questions_by_topic_and_school_of_thought"
	OpInsertQuestionForImam                   Operation = "insert_question_for_imam"
	OpUpsertImamAnswerToQuestion              Operation = "upsert_imam_answer_to_question"
	OpDeleteImamQuestionByID                  Operation = "delete_imam_question_by_id"
)

// Announcements
const (
	OpGetAnnouncements Operation = "get_announcements"
	OpPostAnnouncement Operation = "post_announcement"
	OpEditAnnouncement Operation = "edit_announcement"
)

// EventsRepository is implemented by both tiers of the events feature.
type EventsRepository interface {
	GetEvents(ctx context.Context) ([]models.Event, error)
	UpsertEvent(ctx context.Context, event models.Event) error
	// DeleteEventByID returns the image URL of the removed event, if any.
	DeleteEventByID(ctx context.Context, id int) (*string, error)
}

// PrayerTimesRepository is implemented by both tiers of the prayer times
// feature.
type PrayerTimesRepository interface {
	GetPrayerTimes(ctx context.Context) (*models.PrayerTimes, error)
	// GetUpdatedPrayerTimes compares hash against the stored digest. When they
	// match the result carries no data and the current hash.
	GetUpdatedPrayerTimes(ctx context.Context, hash string) (*models.PrayerTimes, error)
	UpsertPrayerTimes(ctx context.Context, prayerTimes models.PrayerTimes) error
}

// PrayerTimesEvicter is implemented by fast tiers that can drop their copy of
// the blob.
type PrayerTimesEvicter interface {
	EvictPrayerTimes(ctx context.Context) error
}

// ImamQuestionsRepository is implemented by both tiers of the ask-the-imam
// feature. There is one read method per filter combination.
type ImamQuestionsRepository interface {
	GetAnsweredQuestions(ctx context.Context) ([]models.ImamQuestion, error)
	GetAnsweredQuestionsByTopic(ctx context.Context, topic string) ([]models.ImamQuestion, error)
	GetAnsweredQuestionsBySchoolOfThought(ctx context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error)
	GetAnsweredQuestionsByTopicAndSchoolOfThought(ctx context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error)

	GetUnansweredQuestions(ctx context.Context) ([]models.ImamQuestion, error)
	GetUnansweredQuestionsByTopic(ctx context.Context, topic string) ([]models.ImamQuestion, error)
	GetUnansweredQuestionsBySchoolOfThought(ctx context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error)
	GetUnansweredQuestionsByTopicAndSchoolOfThought(ctx context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error)

	GetAllQuestions(ctx context.Context) ([]models.ImamQuestion, error)
	GetAllQuestionsByTopic(ctx context.Context, topic string) ([]models.ImamQuestion, error)
	GetAllQuestionsBySchoolOfThought(ctx context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error)
	GetAllQuestionsByTopicAndSchoolOfThought(ctx context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error)

	InsertQuestion(ctx context.Context, question models.ImamQuestion) error
	UpsertAnswer(ctx context.Context, answer models.ImamAnswer) error
	DeleteQuestionByID(ctx context.Context, id int) error
}

// AnnouncementsRepository is implemented by both tiers of the announcements
// feature.
type AnnouncementsRepository interface {
	GetAnnouncements(ctx context.Context) ([]models.Announcement, error)
	PostAnnouncement(ctx context.Context, announcement models.Announcement) error
	EditAnnouncement(ctx context.Context, announcement models.Announcement) error
}
