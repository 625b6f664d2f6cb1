package repository

import (
	"context"
	"errors"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"gorm.io/gorm"
)

// AnnouncementsPostgresRepository is the durable tier for announcements.
// post_announcement and edit_announcement RAISE when the author is not a
// registered user.
type AnnouncementsPostgresRepository struct {
	PostgresBase
}

var _ AnnouncementsRepository = (*AnnouncementsPostgresRepository)(nil)

func NewAnnouncementsPostgresRepository(db *gorm.DB) *AnnouncementsPostgresRepository {
	return &AnnouncementsPostgresRepository{PostgresBase: NewPostgresBase(db)}
}

func (r *AnnouncementsPostgresRepository) GetAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return list[models.Announcement](ctx, r.PostgresBase, OpGetAnnouncements)
}

func (r *AnnouncementsPostgresRepository) PostAnnouncement(ctx context.Context, a models.Announcement) error {
	return authorError(OpPostAnnouncement,
		r.exec(ctx, OpPostAnnouncement, a.Title, a.Description, a.Image, a.Author))
}

func (r *AnnouncementsPostgresRepository) EditAnnouncement(ctx context.Context, a models.Announcement) error {
	return authorError(OpEditAnnouncement,
		r.affected(ctx, OpEditAnnouncement, a.ID, a.Author, a.Title, a.Description, a.Image))
}

// authorError reclassifies a RAISE from the stored function as
// ErrAuthorNotFound.
func authorError(op Operation, err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) && isRaisedException(opErr.Err) {
		return opError(TierDurable, op, ErrAuthorNotFound, opErr.Err)
	}
	return err
}
