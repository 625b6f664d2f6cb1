package businessflow

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/repository"
	"github.com/Zayd-McArdle/MasjidApp/utils"
)

// AskImamFlow handles questions put to the imam and the imam's answers.
type AskImamFlow interface {
	GetAnsweredQuestions(ctx context.Context, req *dto.GetImamQuestionsRequest) (*dto.GetImamQuestionsResponse, error)
	AdminGetQuestions(ctx context.Context, req *dto.AdminGetImamQuestionsRequest) (*dto.GetImamQuestionsResponse, error)
	InsertQuestion(ctx context.Context, req *dto.InsertQuestionRequest) error
	AnswerQuestion(ctx context.Context, req *dto.AnswerQuestionRequest) error
	DeleteQuestionByID(ctx context.Context, id int) error
}

type AskImamFlowImpl struct {
	questions *repository.Coordinator[repository.ImamQuestionsRepository]
	answered  *repository.Router[repository.ImamQuestionsRepository, models.AnsweredQuestionFilter, models.ImamQuestion]
	all       *repository.Router[repository.ImamQuestionsRepository, models.ImamQuestionFilter, models.ImamQuestion]
}

func NewAskImamFlow(questions *repository.Coordinator[repository.ImamQuestionsRepository]) AskImamFlow {
	return &AskImamFlowImpl{
		questions: questions,
		answered:  repository.MustRouter(questions, repository.AnsweredQuestionKey, repository.AnsweredQuestionQueries()),
		all:       repository.MustRouter(questions, repository.QuestionKey, repository.QuestionQueries()),
	}
}

func (f *AskImamFlowImpl) GetAnsweredQuestions(ctx context.Context, req *dto.GetImamQuestionsRequest) (*dto.GetImamQuestionsResponse, error) {
	var filter models.AnsweredQuestionFilter
	if req != nil {
		filter.Topic = optionalText(req.Topic)
		filter.SchoolOfThought = parseSchool(req.SchoolOfThought)
	}

	questions, err := f.answered.Route(ctx, filter)
	if err != nil {
		return nil, wrap("failed to get answered questions", err)
	}
	return toQuestionsResponse(questions), nil
}

func (f *AskImamFlowImpl) AdminGetQuestions(ctx context.Context, req *dto.AdminGetImamQuestionsRequest) (*dto.GetImamQuestionsResponse, error) {
	var filter models.ImamQuestionFilter
	if req != nil {
		filter.Topic = optionalText(req.Topic)
		filter.SchoolOfThought = parseSchool(req.SchoolOfThought)
		if req.Status != nil {
			if status, ok := models.ParseQuestionStatus(*req.Status); ok {
				filter.Status = &status
			}
		}
	}

	questions, err := f.all.Route(ctx, filter)
	if err != nil {
		return nil, wrap("failed to get questions", err)
	}
	return toQuestionsResponse(questions), nil
}

func (f *AskImamFlowImpl) InsertQuestion(ctx context.Context, req *dto.InsertQuestionRequest) error {
	if req == nil {
		return wrap("invalid question", ErrNilRequest)
	}
	if runeLen(req.Title) < minTitleLen {
		return wrap("invalid question", ErrTitleTooShort)
	}
	if runeLen(req.Topic) < minTopicLen {
		return wrap("invalid question", ErrTopicTooShort)
	}

	question := models.ImamQuestion{
		Title:           req.Title,
		Topic:           req.Topic,
		SchoolOfThought: parseSchool(req.SchoolOfThought),
		Description:     req.Description,
		DateOfQuestion:  utils.UTCNow(),
	}
	err := repository.Write(ctx, f.questions, repository.OpInsertQuestionForImam,
		func(ctx context.Context, r repository.ImamQuestionsRepository) error {
			return r.InsertQuestion(ctx, question)
		})
	return wrap("failed to submit question", err)
}

func (f *AskImamFlowImpl) AnswerQuestion(ctx context.Context, req *dto.AnswerQuestionRequest) error {
	if req == nil {
		return wrap("invalid answer", ErrNilRequest)
	}
	if req.QuestionID == 0 {
		return wrap("invalid question id", repository.ErrZeroID)
	}
	if runeLen(req.Answer.ImamName) == 0 || runeLen(req.Answer.Text) == 0 {
		return wrap("invalid answer", ErrAnswerIncomplete)
	}

	answer := models.ImamAnswer{
		QuestionID:   req.QuestionID,
		ImamName:     req.Answer.ImamName,
		Text:         req.Answer.Text,
		DateAnswered: req.Answer.DateAnswered.UTC(),
	}
	if answer.DateAnswered.IsZero() {
		answer.DateAnswered = utils.UTCNow()
	}
	err := repository.Write(ctx, f.questions, repository.OpUpsertImamAnswerToQuestion,
		func(ctx context.Context, r repository.ImamQuestionsRepository) error {
			return r.UpsertAnswer(ctx, answer)
		})
	return wrap("failed to answer question", err)
}

func (f *AskImamFlowImpl) DeleteQuestionByID(ctx context.Context, id int) error {
	if id == 0 {
		return wrap("invalid question id", repository.ErrZeroID)
	}
	err := repository.Write(ctx, f.questions, repository.OpDeleteImamQuestionByID,
		func(ctx context.Context, r repository.ImamQuestionsRepository) error {
			return r.DeleteQuestionByID(ctx, id)
		})
	return wrap("failed to delete question", err)
}

// parseSchool drops values that are not a known school of thought.
func parseSchool(s *string) *models.SchoolOfThought {
	if s == nil {
		return nil
	}
	school, ok := models.ParseSchoolOfThought(*s)
	if !ok {
		return nil
	}
	return &school
}

func toQuestionsResponse(questions []models.ImamQuestion) *dto.GetImamQuestionsResponse {
	res := &dto.GetImamQuestionsResponse{Questions: make([]dto.ImamQuestionDTO, 0, len(questions))}
	for _, q := range questions {
		res.Questions = append(res.Questions, ToImamQuestionDTO(q))
	}
	return res
}

// ToImamQuestionDTO reports an answer only when name, text and date are all
// stored.
func ToImamQuestionDTO(q models.ImamQuestion) dto.ImamQuestionDTO {
	out := dto.ImamQuestionDTO{
		ID:             q.ID,
		Title:          q.Title,
		Topic:          q.Topic,
		Description:    q.Description,
		DateOfQuestion: q.DateOfQuestion,
	}
	if q.SchoolOfThought != nil {
		school := string(*q.SchoolOfThought)
		out.SchoolOfThought = &school
	}
	if q.ImamName != nil && q.Answer != nil && q.DateAnswered != nil {
		out.Answer = &dto.Answer{
			ImamName:     *q.ImamName,
			Text:         *q.Answer,
			DateAnswered: *q.DateAnswered,
		}
	}
	return out
}
