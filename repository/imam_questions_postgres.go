package repository

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"gorm.io/gorm"
)

// ImamQuestionsPostgresRepository is the durable tier for ask-the-imam. Each
// read maps to the stored function named by its operation.
type ImamQuestionsPostgresRepository struct {
	PostgresBase
}

var _ ImamQuestionsRepository = (*ImamQuestionsPostgresRepository)(nil)

func NewImamQuestionsPostgresRepository(db *gorm.DB) *ImamQuestionsPostgresRepository {
	return &ImamQuestionsPostgresRepository{PostgresBase: NewPostgresBase(db)}
}

func (r *ImamQuestionsPostgresRepository) questions(ctx context.Context, op Operation, args ...any) ([]models.ImamQuestion, error) {
	return list[models.ImamQuestion](ctx, r.PostgresBase, op, args...)
}

func (r *ImamQuestionsPostgresRepository) GetAnsweredQuestions(ctx context.Context) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAnsweredQuestions)
}

func (r *ImamQuestionsPostgresRepository) GetAnsweredQuestionsByTopic(ctx context.Context, topic string) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAnsweredQuestionsByTopic, topic)
}

func (r *ImamQuestionsPostgresRepository) GetAnsweredQuestionsBySchoolOfThought(ctx context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAnsweredQuestionsBySchoolOfThought, string(school))
}

func (r *ImamQuestionsPostgresRepository) GetAnsweredQuestionsByTopicAndSchoolOfThought(ctx context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAnsweredQuestionsByTopicAndSchool, topic, string(school))
}

func (r *ImamQuestionsPostgresRepository) GetUnansweredQuestions(ctx context.Context) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetUnansweredQuestions)
}

func (r *ImamQuestionsPostgresRepository) GetUnansweredQuestionsByTopic(ctx context.Context, topic string) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetUnansweredQuestionsByTopic, topic)
}

func (r *ImamQuestionsPostgresRepository) GetUnansweredQuestionsBySchoolOfThought(ctx context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetUnansweredQuestionsBySchoolOfThought, string(school))
}

func (r *ImamQuestionsPostgresRepository) GetUnansweredQuestionsByTopicAndSchoolOfThought(ctx context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetUnansweredQuestionsByTopicAndSchool, topic, string(school))
}

func (r *ImamQuestionsPostgresRepository) GetAllQuestions(ctx context.Context) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAllQuestions)
}

func (r *ImamQuestionsPostgresRepository) GetAllQuestionsByTopic(ctx context.Context, topic string) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAllQuestionsByTopic, topic)
}

func (r *ImamQuestionsPostgresRepository) GetAllQuestionsBySchoolOfThought(ctx context.Context, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAllQuestionsBySchoolOfThought, string(school))
}

func (r *ImamQuestionsPostgresRepository) GetAllQuestionsByTopicAndSchoolOfThought(ctx context.Context, topic string, school models.SchoolOfThought) ([]models.ImamQuestion, error) {
	return r.questions(ctx, OpGetAllQuestionsByTopicAndSchool, topic, string(school))
}

func (r *ImamQuestionsPostgresRepository) InsertQuestion(ctx context.Context, q models.ImamQuestion) error {
	var school *string
	if q.SchoolOfThought != nil {
		s := string(*q.SchoolOfThought)
		school = &s
	}
	return r.exec(ctx, OpInsertQuestionForImam, q.Title, q.Topic, school, q.Description, q.DateOfQuestion)
}

func (r *ImamQuestionsPostgresRepository) UpsertAnswer(ctx context.Context, a models.ImamAnswer) error {
	return r.affected(ctx, OpUpsertImamAnswerToQuestion, a.ImamName, a.Text, a.DateAnswered, a.QuestionID)
}

func (r *ImamQuestionsPostgresRepository) DeleteQuestionByID(ctx context.Context, id int) error {
	return r.affected(ctx, OpDeleteImamQuestionByID, id)
}
