package repository

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/stretchr/testify/mock"
)

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) GetEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Error(1)
}

func (m *mockEvents) UpsertEvent(ctx context.Context, event models.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEvents) DeleteEventByID(ctx context.Context, id int) (*string, error) {
	args := m.Called(ctx, id)
	url, _ := args.Get(0).(*string)
	return url, args.Error(1)
}

type mockPrayerTimes struct {
	mock.Mock
}

func (m *mockPrayerTimes) GetPrayerTimes(ctx context.Context) (*models.PrayerTimes, error) {
	args := m.Called(ctx)
	pt, _ := args.Get(0).(*models.PrayerTimes)
	return pt, args.Error(1)
}

func (m *mockPrayerTimes) GetUpdatedPrayerTimes(ctx context.Context, hash string) (*models.PrayerTimes, error) {
	args := m.Called(ctx, hash)
	pt, _ := args.Get(0).(*models.PrayerTimes)
	return pt, args.Error(1)
}

func (m *mockPrayerTimes) UpsertPrayerTimes(ctx context.Context, pt models.PrayerTimes) error {
	return m.Called(ctx, pt).Error(0)
}

// recordingQuestions records the name of every method called on it and
// returns one question per call.
type recordingQuestions struct {
	calls []string
	args  [][]any
}

func (r *recordingQuestions) record(name string, args ...any) ([]models.ImamQuestion, error) {
	r.calls = append(r.calls, name)
	r.args = append(r.args, args)
	return []models.ImamQuestion{{ID: len(r.calls), Title: name}}, nil
}

func (r *recordingQuestions) GetAnsweredQuestions(context.Context) ([]models.ImamQuestion, error) {
	return r.record("GetAnsweredQuestions")
}

func (r *recordingQuestions) GetAnsweredQuestionsByTopic(_ context.Context, topic string) ([]models.ImamQuestion, error) {
	return r.record("GetAnsweredQuestionsByTopic", topic)
}

func (r *recordingQuestions) GetAnsweredQuestionsBySchoolOfThought(_ context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.record("GetAnsweredQuestionsBySchoolOfThought", school)
}

func (r *recordingQuestions) GetAnsweredQuestionsByTopicAndSchoolOfThought(_ context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.record("GetAnsweredQuestionsByTopicAndSchoolOfThought", topic, school)
}

func (r *recordingQuestions) GetUnansweredQuestions(context.Context) ([]models.ImamQuestion, error) {
	return r.record("GetUnansweredQuestions")
}

func (r *recordingQuestions) GetUnansweredQuestionsByTopic(_ context.Context, topic string) ([]models.ImamQuestion, error) {
	return r.record("GetUnansweredQuestionsByTopic", topic)
}

func (r *recordingQuestions) GetUnansweredQuestionsBySchoolOfThought(_ context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.record("GetUnansweredQuestionsBySchoolOfThought", school)
}

func (r *recordingQuestions) GetUnansweredQuestionsByTopicAndSchoolOfThought(_ context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.record("GetUnansweredQuestionsByTopicAndSchoolOfThought", topic, school)
}

func (r *recordingQuestions) GetAllQuestions(context.Context) ([]models.ImamQuestion, error) {
	return r.record("GetAllQuestions")
}

func (r *recordingQuestions) GetAllQuestionsByTopic(_ context.Context, topic string) ([]models.ImamQuestion, error) {
	return r.record("GetAllQuestionsByTopic", topic)
}

func (r *recordingQuestions) GetAllQuestionsBySchoolOfThought(_ context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.record("GetAllQuestionsBySchoolOfThought", school)
}

func (r *recordingQuestions) GetAllQuestionsByTopicAndSchoolOfThought(_ context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.record("GetAllQuestionsByTopicAndSchoolOfThought", topic, school)
}

func (r *recordingQuestions) InsertQuestion(context.Context, models.ImamQuestion) error {
	r.calls = append(r.calls, "InsertQuestion")
	return nil
}

func (r *recordingQuestions) UpsertAnswer(context.Context, models.ImamAnswer) error {
	r.calls = append(r.calls, "UpsertAnswer")
	return nil
}

func (r *recordingQuestions) DeleteQuestionByID(context.Context, int) error {
	r.calls = append(r.calls, "DeleteQuestionByID")
	return nil
}
