package repository

import (
	"context"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/redis/go-redis/v9"
)

// AnnouncementsRedisRepository is the fast tier for announcements.
type AnnouncementsRedisRepository struct {
	RedisBase
}

var _ AnnouncementsRepository = (*AnnouncementsRedisRepository)(nil)

func NewAnnouncementsRedisRepository(client redis.UniversalClient, prefix string, ttl time.Duration) *AnnouncementsRedisRepository {
	return &AnnouncementsRedisRepository{RedisBase: NewRedisBase(client, prefix, "announcements", ttl)}
}

func (r *AnnouncementsRedisRepository) GetAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := r.load(ctx, OpGetAnnouncements, r.key(OpGetAnnouncements), &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *AnnouncementsRedisRepository) PostAnnouncement(ctx context.Context, _ models.Announcement) error {
	return r.invalidate(ctx, OpPostAnnouncement)
}

func (r *AnnouncementsRedisRepository) EditAnnouncement(ctx context.Context, _ models.Announcement) error {
	return r.invalidate(ctx, OpEditAnnouncement)
}

func (r *AnnouncementsRedisRepository) StoreAnnouncements(ctx context.Context, announcements []models.Announcement) error {
	return r.store(ctx, OpGetAnnouncements, r.key(OpGetAnnouncements), announcements)
}
