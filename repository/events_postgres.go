package repository

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"gorm.io/gorm"
)

// EventsPostgresRepository is the durable tier for events.
type EventsPostgresRepository struct {
	PostgresBase
}

var _ EventsRepository = (*EventsPostgresRepository)(nil)

func NewEventsPostgresRepository(db *gorm.DB) *EventsPostgresRepository {
	return &EventsPostgresRepository{PostgresBase: NewPostgresBase(db)}
}

func (r *EventsPostgresRepository) GetEvents(ctx context.Context) ([]models.Event, error) {
	return list[models.Event](ctx, r.PostgresBase, OpGetEvents)
}

// UpsertEvent inserts the event when ID is 0 and replaces it otherwise.
func (r *EventsPostgresRepository) UpsertEvent(ctx context.Context, e models.Event) error {
	return r.exec(ctx, OpUpsertEvent,
		e.ID, e.Title, e.Description, e.Date, string(e.Type), string(e.Recurrence), string(e.Status),
		e.MinimumAge, e.MaximumAge, e.ImageURL, e.FullName, e.PhoneNumber, e.Email,
	)
}

func (r *EventsPostgresRepository) DeleteEventByID(ctx context.Context, id int) (*string, error) {
	type deleted struct {
		ImageURL *string `gorm:"column:image_url"`
	}
	rows, err := list[deleted](ctx, r.PostgresBase, OpDeleteEventByID, id)
	if err != nil {
		return nil, err
	}
	return rows[0].ImageURL, nil
}
