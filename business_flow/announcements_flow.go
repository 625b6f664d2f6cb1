package businessflow

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/repository"
	"github.com/Zayd-McArdle/MasjidApp/utils"
)

// AnnouncementsFlow defines operations on mosque announcements.
type AnnouncementsFlow interface {
	GetAnnouncements(ctx context.Context) (*dto.GetAnnouncementsResponse, error)
	PostAnnouncement(ctx context.Context, req *dto.PostAnnouncementRequest) error
	EditAnnouncement(ctx context.Context, req *dto.EditAnnouncementRequest) error
}

type AnnouncementsFlowImpl struct {
	announcements *repository.Coordinator[repository.AnnouncementsRepository]
}

func NewAnnouncementsFlow(announcements *repository.Coordinator[repository.AnnouncementsRepository]) AnnouncementsFlow {
	return &AnnouncementsFlowImpl{announcements: announcements}
}

func (f *AnnouncementsFlowImpl) GetAnnouncements(ctx context.Context) (*dto.GetAnnouncementsResponse, error) {
	announcements, err := repository.ReadMany(ctx, f.announcements, repository.OpGetAnnouncements,
		func(ctx context.Context, r repository.AnnouncementsRepository) ([]models.Announcement, error) {
			return r.GetAnnouncements(ctx)
		})
	if err != nil {
		return nil, wrap("failed to get announcements", err)
	}

	res := &dto.GetAnnouncementsResponse{Announcements: make([]dto.AnnouncementDTO, 0, len(announcements))}
	for _, a := range announcements {
		res.Announcements = append(res.Announcements, dto.AnnouncementDTO{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			LastUpdated: a.LastUpdated,
			Image:       a.Image,
			Author:      a.Author,
		})
	}
	return res, nil
}

func (f *AnnouncementsFlowImpl) PostAnnouncement(ctx context.Context, req *dto.PostAnnouncementRequest) error {
	if req == nil {
		return wrap("invalid announcement", ErrNilRequest)
	}
	if runeLen(req.Title) < minTitleLen {
		return wrap("invalid announcement", ErrTitleTooShort)
	}

	announcement := models.Announcement{
		Title:       req.Title,
		Description: req.Description,
		LastUpdated: utils.UTCNow(),
		Image:       req.Image,
		Author:      req.Author,
	}
	err := repository.Write(ctx, f.announcements, repository.OpPostAnnouncement,
		func(ctx context.Context, r repository.AnnouncementsRepository) error {
			return r.PostAnnouncement(ctx, announcement)
		})
	return wrap("failed to post announcement", err)
}

func (f *AnnouncementsFlowImpl) EditAnnouncement(ctx context.Context, req *dto.EditAnnouncementRequest) error {
	if req == nil {
		return wrap("invalid announcement", ErrNilRequest)
	}
	if req.ID == 0 {
		return wrap("invalid announcement id", repository.ErrZeroID)
	}
	if runeLen(req.Title) < minTitleLen {
		return wrap("invalid announcement", ErrTitleTooShort)
	}

	announcement := models.Announcement{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		LastUpdated: utils.UTCNow(),
		Image:       req.Image,
		Author:      req.Author,
	}
	err := repository.Write(ctx, f.announcements, repository.OpEditAnnouncement,
		func(ctx context.Context, r repository.AnnouncementsRepository) error {
			return r.EditAnnouncement(ctx, announcement)
		})
	return wrap("failed to edit announcement", err)
}
