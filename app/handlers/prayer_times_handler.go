package handlers

import (
	"bytes"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	businessflow "github.com/Zayd-McArdle/MasjidApp/business_flow"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// PrayerTimesHandlerInterface defines the contract for prayer times handlers.
type PrayerTimesHandlerInterface interface {
	GetPrayerTimes(c fiber.Ctx) error
	GetUpdatedPrayerTimes(c fiber.Ctx) error
	UpsertPrayerTimes(c fiber.Ctx) error
}

// PrayerTimesHandler serves the prayer timetable as an opaque binary file.
type PrayerTimesHandler struct {
	base
	flow businessflow.PrayerTimesFlow
}

func NewPrayerTimesHandler(flow businessflow.PrayerTimesFlow, logger *zap.Logger, timeout time.Duration) *PrayerTimesHandler {
	return &PrayerTimesHandler{base: newBase(logger, timeout), flow: flow}
}

// GetPrayerTimes returns the current timetable.
// @Router /api/v1/prayer-times [get]
func (h *PrayerTimesHandler) GetPrayerTimes(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/prayer-times")
	defer cancel()

	res, err := h.flow.Sync(ctx, nil)
	if err != nil {
		return h.fail(c, err, "Failed to retrieve prayer times")
	}
	return h.sendBlob(c, res)
}

// GetUpdatedPrayerTimes answers 304 when the caller's hash is current and
// the new timetable otherwise.
// @Router /api/v1/prayer-times/updated/{hash} [get]
func (h *PrayerTimesHandler) GetUpdatedPrayerTimes(c fiber.Ctx) error {
	hash := c.Params("hash")

	ctx, cancel := h.createRequestContext(c, "/api/v1/prayer-times/updated/:hash")
	defer cancel()

	res, err := h.flow.Sync(ctx, &hash)
	if err != nil {
		return h.fail(c, err, "Failed to retrieve updated prayer times")
	}
	return h.sendBlob(c, res)
}

// UpsertPrayerTimes replaces the timetable. The body is the raw file and the
// X-File-Hash header its SHA-256 digest.
// @Router /api/v1/admin/prayer-times [put]
func (h *PrayerTimesHandler) UpsertPrayerTimes(c fiber.Ctx) error {
	req := dto.UpsertPrayerTimesRequest{
		// the request body buffer is reused once the handler returns
		Data: bytes.Clone(c.Body()),
		Hash: c.Get(FileHashHeader),
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/prayer-times")
	defer cancel()

	res, err := h.flow.UpsertPrayerTimes(ctx, &req)
	if err != nil {
		return h.fail(c, err, "Failed to update prayer times")
	}
	return h.SuccessResponse(c, fiber.StatusOK, res.Message, res)
}

func (h *PrayerTimesHandler) sendBlob(c fiber.Ctx, res *dto.PrayerTimesSync) error {
	c.Set(FileHashHeader, res.Hash)
	if res.Unchanged {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Status(fiber.StatusOK).Send(res.Data)
}
