package repository

import (
	"context"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/redis/go-redis/v9"
)

// EventsRedisRepository is the fast tier for events. It caches the event
// list; any write drops the cached list.
type EventsRedisRepository struct {
	RedisBase
}

var _ EventsRepository = (*EventsRedisRepository)(nil)

func NewEventsRedisRepository(client redis.UniversalClient, prefix string, ttl time.Duration) *EventsRedisRepository {
	return &EventsRedisRepository{RedisBase: NewRedisBase(client, prefix, "events", ttl)}
}

func (r *EventsRedisRepository) GetEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.load(ctx, OpGetEvents, r.key(OpGetEvents), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventsRedisRepository) UpsertEvent(ctx context.Context, _ models.Event) error {
	return r.invalidate(ctx, OpUpsertEvent)
}

// DeleteEventByID drops the cached list. The image URL is only known to the
// durable tier.
func (r *EventsRedisRepository) DeleteEventByID(ctx context.Context, _ int) (*string, error) {
	return nil, r.invalidate(ctx, OpDeleteEventByID)
}

// StoreEvents replaces the cached event list.
func (r *EventsRedisRepository) StoreEvents(ctx context.Context, events []models.Event) error {
	return r.store(ctx, OpGetEvents, r.key(OpGetEvents), events)
}
