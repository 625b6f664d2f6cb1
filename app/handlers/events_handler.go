package handlers

import (
	"time"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	businessflow "github.com/Zayd-McArdle/MasjidApp/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// EventsHandlerInterface defines the contract for events handlers.
type EventsHandlerInterface interface {
	GetEvents(c fiber.Ctx) error
	UpsertEvent(c fiber.Ctx) error
	DeleteEvent(c fiber.Ctx) error
}

// EventsHandler handles events requests.
type EventsHandler struct {
	base
	flow businessflow.EventsFlow
}

func NewEventsHandler(flow businessflow.EventsFlow, logger *zap.Logger, timeout time.Duration) *EventsHandler {
	return &EventsHandler{base: newBase(logger, timeout), flow: flow}
}

// GetEvents lists all events.
// @Router /api/v1/events [get]
func (h *EventsHandler) GetEvents(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/events")
	defer cancel()

	res, err := h.flow.GetEvents(ctx)
	if err != nil {
		return h.failCollection(c, err, "Failed to retrieve events")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Events retrieved successfully", res)
}

// UpsertEvent creates an event when its id is 0 and replaces it otherwise.
// @Router /api/v1/admin/events [put]
func (h *EventsHandler) UpsertEvent(c fiber.Ctx) error {
	var req dto.UpsertEventRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/events")
	defer cancel()

	if err := h.flow.UpsertEvent(ctx, &req); err != nil {
		return h.fail(c, err, "Failed to save event")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Event saved successfully", nil)
}

// DeleteEvent removes an event by id.
// @Router /api/v1/admin/events/{id} [delete]
func (h *EventsHandler) DeleteEvent(c fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid event id", "INVALID_REQUEST", err.Error())
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/events/:id")
	defer cancel()

	res, err := h.flow.DeleteEventByID(ctx, id)
	if err != nil {
		return h.fail(c, err, "Failed to delete event")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}
