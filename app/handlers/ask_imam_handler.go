package handlers

import (
	"time"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	businessflow "github.com/Zayd-McArdle/MasjidApp/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// AskImamHandlerInterface defines the contract for ask-the-imam handlers.
type AskImamHandlerInterface interface {
	GetAnsweredQuestions(c fiber.Ctx) error
	InsertQuestion(c fiber.Ctx) error
	AdminGetQuestions(c fiber.Ctx) error
	AnswerQuestion(c fiber.Ctx) error
	DeleteQuestion(c fiber.Ctx) error
}

type AskImamHandler struct {
	base
	flow businessflow.AskImamFlow
}

func NewAskImamHandler(flow businessflow.AskImamFlow, logger *zap.Logger, timeout time.Duration) *AskImamHandler {
	return &AskImamHandler{base: newBase(logger, timeout), flow: flow}
}

// GetAnsweredQuestions lists answered questions, optionally narrowed by
// topic and school of thought.
// @Router /api/v1/ask-imam/questions [get]
func (h *AskImamHandler) GetAnsweredQuestions(c fiber.Ctx) error {
	req := dto.GetImamQuestionsRequest{
		Topic:           optionalQuery(c, "topic"),
		SchoolOfThought: optionalQuery(c, "schoolOfThought"),
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/ask-imam/questions")
	defer cancel()

	res, err := h.flow.GetAnsweredQuestions(ctx, &req)
	if err != nil {
		return h.failCollection(c, err, "Failed to retrieve questions")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Questions retrieved successfully", res)
}

// InsertQuestion submits a question to the imam.
// @Router /api/v1/ask-imam/questions [post]
func (h *AskImamHandler) InsertQuestion(c fiber.Ctx) error {
	var req dto.InsertQuestionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/ask-imam/questions")
	defer cancel()

	if err := h.flow.InsertQuestion(ctx, &req); err != nil {
		return h.fail(c, err, "Failed to submit question")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Question submitted successfully", nil)
}

// AdminGetQuestions lists questions of any status.
// @Router /api/v1/admin/ask-imam/questions [get]
func (h *AskImamHandler) AdminGetQuestions(c fiber.Ctx) error {
	req := dto.AdminGetImamQuestionsRequest{
		Status:          optionalQuery(c, "status"),
		Topic:           optionalQuery(c, "topic"),
		SchoolOfThought: optionalQuery(c, "schoolOfThought"),
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/ask-imam/questions")
	defer cancel()

	res, err := h.flow.AdminGetQuestions(ctx, &req)
	if err != nil {
		return h.failCollection(c, err, "Failed to retrieve questions")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Questions retrieved successfully", res)
}

// AnswerQuestion records or replaces the imam's answer.
// @Router /api/v1/admin/ask-imam/questions/{id}/answer [patch]
func (h *AskImamHandler) AnswerQuestion(c fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid question id", "INVALID_REQUEST", err.Error())
	}
	var req dto.AnswerQuestionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.QuestionID = id
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/ask-imam/questions/:id/answer")
	defer cancel()

	if err := h.flow.AnswerQuestion(ctx, &req); err != nil {
		return h.fail(c, err, "Failed to answer question")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Answer saved successfully", nil)
}

// DeleteQuestion removes a question by id.
// @Router /api/v1/admin/ask-imam/questions/{id} [delete]
func (h *AskImamHandler) DeleteQuestion(c fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid question id", "INVALID_REQUEST", err.Error())
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/ask-imam/questions/:id")
	defer cancel()

	if err := h.flow.DeleteQuestionByID(ctx, id); err != nil {
		return h.fail(c, err, "Failed to delete question")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Question deleted successfully", nil)
}
