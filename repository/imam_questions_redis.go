package repository

import (
	"context"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/redis/go-redis/v9"
)

// ImamQuestionsRedisRepository is the fast tier for ask-the-imam. Every
// filtered listing is cached under its own operation and arguments, and any
// write drops the whole feature.
type ImamQuestionsRedisRepository struct {
	RedisBase
}

var _ ImamQuestionsRepository = (*ImamQuestionsRedisRepository)(nil)

func NewImamQuestionsRedisRepository(client redis.UniversalClient, prefix string, ttl time.Duration) *ImamQuestionsRedisRepository {
	return &ImamQuestionsRedisRepository{RedisBase: NewRedisBase(client, prefix, "imam_questions", ttl)}
}

func (r *ImamQuestionsRedisRepository) questions(ctx context.Context, op Operation, args ...string) ([]models.ImamQuestion, error) {
	var questions []models.ImamQuestion
	if err := r.load(ctx, op, r.key(op, args...), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *ImamQuestionsRedisRepository) GetAnsweredQuestions(ctx context.Context) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAnsweredQuestions)
}

func (r *ImamQuestionsRedisRepository) GetAnsweredQuestionsByTopic(ctx context.Context, topic string) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAnsweredQuestionsByTopic, topic)
}

func (r *ImamQuestionsRedisRepository) GetAnsweredQuestionsBySchoolOfThought(ctx context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAnsweredQuestionsBySchoolOfThought, string(school))
}

func (r *ImamQuestionsRedisRepository) GetAnsweredQuestionsByTopicAndSchoolOfThought(ctx context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAnsweredQuestionsByTopicAndSchool, topic, string(school))
}

func (r *ImamQuestionsRedisRepository) GetUnansweredQuestions(ctx context.Context) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetUnansweredQuestions)
}

func (r *ImamQuestionsRedisRepository) GetUnansweredQuestionsByTopic(ctx context.Context, topic string) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetUnansweredQuestionsByTopic, topic)
}

func (r *ImamQuestionsRedisRepository) GetUnansweredQuestionsBySchoolOfThought(ctx context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetUnansweredQuestionsBySchoolOfThought, string(school))
}

func (r *ImamQuestionsRedisRepository) GetUnansweredQuestionsByTopicAndSchoolOfThought(ctx context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetUnansweredQuestionsByTopicAndSchool, topic, string(school))
}

func (r *ImamQuestionsRedisRepository) GetAllQuestions(ctx context.Context) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAllQuestions)
}

func (r *ImamQuestionsRedisRepository) GetAllQuestionsByTopic(ctx context.Context, topic string) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAllQuestionsByTopic, topic)
}

func (r *ImamQuestionsRedisRepository) GetAllQuestionsBySchoolOfThought(ctx context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAllQuestionsBySchoolOfThought, string(school))
}

func (r *ImamQuestionsRedisRepository) GetAllQuestionsByTopicAndSchoolOfThought(ctx context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAllQuestionsByTopicAndSchool, topic, string(school))
}

func (r *ImamQuestionsRedisRepository) InsertQuestion(ctx context.Context, _ models.ImamQuestion) error {
	return r.invalidate(ctx, OpInsertQuestionForImam)
}

func (r *ImamQuestionsRedisRepository) UpsertAnswer(ctx context.Context, _ models.ImamAnswer) error {
	return r.invalidate(ctx, OpUpsertImamAnswerToQuestion)
}

func (r *ImamQuestionsRedisRepository) DeleteQuestionByID(ctx context.Context, _ int) error {
	return r.invalidate(ctx, OpDeleteImamQuestionByID)
}

// StoreAnsweredQuestions replaces the cached unfiltered answered listing.
func (r *ImamQuestionsRedisRepository) StoreAnsweredQuestions(ctx context.Context, questions []models.ImamQuestion) error {
	return r.store(ctx, OpGetAnsweredQuestions, r.key(OpGetAnsweredQuestions), questions)
}
