package repository

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"go.uber.org/zap"
)

// UnimplementedRepository is a fast tier with no backing store. Every
// operation fails with ErrNotImplemented so the coordinator always falls
// through to the durable tier.
type UnimplementedRepository struct {
	logger *zap.Logger
}

var (
	_ EventsRepository        = (*UnimplementedRepository)(nil)
	_ PrayerTimesRepository   = (*UnimplementedRepository)(nil)
	_ ImamQuestionsRepository = (*UnimplementedRepository)(nil)
	_ AnnouncementsRepository = (*UnimplementedRepository)(nil)
)

func NewUnimplementedRepository(logger *zap.Logger) *UnimplementedRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnimplementedRepository{logger: logger}
}

func (r *UnimplementedRepository) fail(op Operation) error {
	r.logger.Debug("fast tier not implemented", zap.String("operation", string(op)))
	return opError(TierFast, op, ErrNotImplemented, nil)
}

func (r *UnimplementedRepository) GetEvents(context.Context) ([]models.Event, error) {
	return nil, r.fail(OpGetEvents)
}

func (r *UnimplementedRepository) UpsertEvent(context.Context, models.Event) error {
	return r.fail(OpUpsertEvent)
}

func (r *UnimplementedRepository) DeleteEventByID(context.Context, int) (*string, error) {
	return nil, r.fail(OpDeleteEventByID)
}

func (r *UnimplementedRepository) GetPrayerTimes(context.Context) (*models.PrayerTimes, error) {
	return nil, r.fail(OpGetPrayerTimes)
}

func (r *UnimplementedRepository) GetUpdatedPrayerTimes(context.Context, string) (*models.PrayerTimes, error) {
	return nil, r.fail(OpGetUpdatedPrayerTimes)
}

func (r *UnimplementedRepository) UpsertPrayerTimes(context.Context, models.PrayerTimes) error {
	return r.fail(OpUpsertPrayerTimes)
}

func (r *UnimplementedRepository) GetAnsweredQuestions(context.Context) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetAnsweredQuestions)
}

func (r *UnimplementedRepository) GetAnsweredQuestionsByTopic(context.Context, string) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetAnsweredQuestionsByTopic)
}

func (r *UnimplementedRepository) GetAnsweredQuestionsBySchoolOfThought(context.Context, models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetAnsweredQuestionsBySchoolOfThought)
}

func (r *UnimplementedRepository) GetAnsweredQuestionsByTopicAndSchoolOfThought(context.Context, string, models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetAnsweredQuestionsByTopicAndSchool)
}

func (r *UnimplementedRepository) GetUnansweredQuestions(context.Context) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetUnansweredQuestions)
}

func (r *UnimplementedRepository) GetUnansweredQuestionsByTopic(context.Context, string) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetUnansweredQuestionsByTopic)
}

func (r *UnimplementedRepository) GetUnansweredQuestionsBySchoolOfThought(context.Context, models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetUnansweredQuestionsBySchoolOfThought)
}

func (r *UnimplementedRepository) GetUnansweredQuestionsByTopicAndSchoolOfThought(context.Context, string, models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetUnansweredQuestionsByTopicAndSchool)
}

func (r *UnimplementedRepository) GetAllQuestions(context.Context) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetAllQuestions)
}

func (r *UnimplementedRepository) GetAllQuestionsByTopic(context.Context, string) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetAllQuestionsByTopic)
}

func (r *UnimplementedRepository) GetAllQuestionsBySchoolOfThought(context.Context, models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetAllQuestionsBySchoolOfThought)
}

func (r *UnimplementedRepository) GetAllQuestionsByTopicAndSchoolOfThought(context.Context, string, models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return nil, r.fail(OpGetAllQuestionsByTopicAndSchool)
}

func (r *UnimplementedRepository) InsertQuestion(context.Context, models.ImamQuestion) error {
	return r.fail(OpInsertQuestionForImam)
}

func (r *UnimplementedRepository) UpsertAnswer(context.Context, models.ImamAnswer) error {
	return r.fail(OpUpsertImamAnswerToQuestion)
}

func (r *UnimplementedRepository) DeleteQuestionByID(context.Context, int) error {
	return r.fail(OpDeleteImamQuestionByID)
}

func (r *UnimplementedRepository) GetAnnouncements(context.Context) ([]models.Announcement, error) {
	return nil, r.fail(OpGetAnnouncements)
}

func (r *UnimplementedRepository) PostAnnouncement(context.Context, models.Announcement) error {
	return r.fail(OpPostAnnouncement)
}

func (r *UnimplementedRepository) EditAnnouncement(context.Context, models.Announcement) error {
	return r.fail(OpEditAnnouncement)
}
