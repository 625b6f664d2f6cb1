package businessflow

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/repository"
)

// EventsFlow lists and maintains the mosque's events.
type EventsFlow interface {
	GetEvents(ctx context.Context) (*dto.GetEventsResponse, error)
	UpsertEvent(ctx context.Context, req *dto.UpsertEventRequest) error
	DeleteEventByID(ctx context.Context, id int) (*dto.DeleteEventResponse, error)
}

type EventsFlowImpl struct {
	events *repository.Coordinator[repository.EventsRepository]
}

func NewEventsFlow(events *repository.Coordinator[repository.EventsRepository]) EventsFlow {
	return &EventsFlowImpl{events: events}
}

func (f *EventsFlowImpl) GetEvents(ctx context.Context) (*dto.GetEventsResponse, error) {
	events, err := repository.ReadMany(ctx, f.events, repository.OpGetEvents,
		func(ctx context.Context, r repository.EventsRepository) ([]models.Event, error) {
			return r.GetEvents(ctx)
		})
	if err != nil {
		return nil, wrap("failed to get events", err)
	}

	res := &dto.GetEventsResponse{Events: make([]dto.EventDTO, 0, len(events))}
	for _, e := range events {
		res.Events = append(res.Events, ToEventDTO(e))
	}
	return res, nil
}

// UpsertEvent creates the event when its id is 0 and replaces it otherwise.
func (f *EventsFlowImpl) UpsertEvent(ctx context.Context, req *dto.UpsertEventRequest) error {
	if req == nil {
		return wrap("invalid event", ErrNilRequest)
	}
	event, err := EventFromDTO(req.Event)
	if err != nil {
		return wrap("invalid event", err)
	}

	err = repository.Write(ctx, f.events, repository.OpUpsertEvent,
		func(ctx context.Context, r repository.EventsRepository) error {
			return r.UpsertEvent(ctx, event)
		})
	return wrap("failed to save event", err)
}

// DeleteEventByID removes an event and reports the image it referenced so the
// caller can clean it up.
func (f *EventsFlowImpl) DeleteEventByID(ctx context.Context, id int) (*dto.DeleteEventResponse, error) {
	if id == 0 {
		return nil, wrap("invalid event id", repository.ErrZeroID)
	}

	imageURL, err := repository.WriteValue(ctx, f.events, repository.OpDeleteEventByID,
		func(ctx context.Context, r repository.EventsRepository) (*string, error) {
			return r.DeleteEventByID(ctx, id)
		})
	if err != nil {
		return nil, wrap("failed to delete event", err)
	}
	return &dto.DeleteEventResponse{Message: "Event deleted successfully", ImageURL: imageURL}, nil
}

// ToEventDTO nests the flat event row. The age range is only reported when
// both bounds are stored.
func ToEventDTO(e models.Event) dto.EventDTO {
	var ageRange *dto.AgeRange
	if e.MinimumAge != nil && e.MaximumAge != nil {
		ageRange = &dto.AgeRange{MinimumAge: *e.MinimumAge, MaximumAge: *e.MaximumAge}
	}
	return dto.EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		EventDetails: dto.EventDetails{
			EventType:       string(e.Type),
			EventRecurrence: string(e.Recurrence),
			EventStatus:     string(e.Status),
			AgeRange:        ageRange,
			ImageURL:        e.ImageURL,
			ContactDetails: dto.ContactDetails{
				FullName:    e.FullName,
				PhoneNumber: e.PhoneNumber,
				Email:       e.Email,
			},
		},
	}
}

// EventFromDTO flattens an event for storage, rejecting unknown enum values.
func EventFromDTO(d dto.EventDTO) (models.Event, error) {
	eventType, ok := models.ParseEventType(d.EventDetails.EventType)
	if !ok {
		return models.Event{}, NewBusinessErrorf(CodeInvalidRequest, "unknown event type %q", repository.ErrInvalid, d.EventDetails.EventType)
	}
	recurrence, ok := models.ParseEventRecurrence(d.EventDetails.EventRecurrence)
	if !ok {
		return models.Event{}, NewBusinessErrorf(CodeInvalidRequest, "unknown event recurrence %q", repository.ErrInvalid, d.EventDetails.EventRecurrence)
	}
	status, ok := models.ParseEventStatus(d.EventDetails.EventStatus)
	if !ok {
		return models.Event{}, NewBusinessErrorf(CodeInvalidRequest, "unknown event status %q", repository.ErrInvalid, d.EventDetails.EventStatus)
	}
	if runeLen(d.Title) < minTitleLen {
		return models.Event{}, ErrTitleTooShort
	}

	event := models.Event{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date.UTC(),
		Type:        eventType,
		Recurrence:  recurrence,
		Status:      status,
		ImageURL:    d.EventDetails.ImageURL,
		FullName:    d.EventDetails.ContactDetails.FullName,
		PhoneNumber: d.EventDetails.ContactDetails.PhoneNumber,
		Email:       d.EventDetails.ContactDetails.Email,
	}
	if ar := d.EventDetails.AgeRange; ar != nil {
		if ar.MaximumAge < ar.MinimumAge {
			return models.Event{}, NewBusinessError(CodeInvalidRequest, "maximum age is below minimum age", repository.ErrInvalid)
		}
		minimum, maximum := ar.MinimumAge, ar.MaximumAge
		event.MinimumAge = &minimum
		event.MaximumAge = &maximum
	}
	return event, nil
}
