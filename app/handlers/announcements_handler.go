package handlers

import (
	"time"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	businessflow "github.com/Zayd-McArdle/MasjidApp/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// AnnouncementsHandlerInterface defines the contract for announcements handlers.
type AnnouncementsHandlerInterface interface {
	GetAnnouncements(c fiber.Ctx) error
	PostAnnouncement(c fiber.Ctx) error
	EditAnnouncement(c fiber.Ctx) error
}

type AnnouncementsHandler struct {
	base
	flow businessflow.AnnouncementsFlow
}

func NewAnnouncementsHandler(flow businessflow.AnnouncementsFlow, logger *zap.Logger, timeout time.Duration) *AnnouncementsHandler {
	return &AnnouncementsHandler{base: newBase(logger, timeout), flow: flow}
}

// @Router /api/v1/announcements [get]
func (h *AnnouncementsHandler) GetAnnouncements(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/announcements")
	defer cancel()

	res, err := h.flow.GetAnnouncements(ctx)
	if err != nil {
		return h.failCollection(c, err, "Failed to retrieve announcements")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Announcements retrieved successfully", res)
}

// PostAnnouncement publishes a new announcement. The author must be a
// registered user.
// @Router /api/v1/admin/announcements [post]
func (h *AnnouncementsHandler) PostAnnouncement(c fiber.Ctx) error {
	var req dto.PostAnnouncementRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/announcements")
	defer cancel()

	if err := h.flow.PostAnnouncement(ctx, &req); err != nil {
		return h.fail(c, err, "Failed to post announcement")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Announcement posted successfully", nil)
}

// @Router /api/v1/admin/announcements [put]
func (h *AnnouncementsHandler) EditAnnouncement(c fiber.Ctx) error {
	var req dto.EditAnnouncementRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if ok, err := h.validate(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/announcements")
	defer cancel()

	if err := h.flow.EditAnnouncement(ctx, &req); err != nil {
		return h.fail(c, err, "Failed to edit announcement")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Announcement updated successfully", nil)
}
