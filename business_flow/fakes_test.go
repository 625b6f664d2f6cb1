package businessflow

import (
	"context"
	"sync"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/repository"
)

// memoryPrayerTimes is a prayer times tier backed by a single in-memory blob.
// With durable set it rejects a publish of the stored digest the way the
// postgres tier does.
type memoryPrayerTimes struct {
	mu         sync.Mutex
	blob       *models.PrayerTimes
	err        error
	durable    bool
	failWrites int
	calls      int
	evictions  int
}

func durablePrayerTimes(blob *models.PrayerTimes) *memoryPrayerTimes {
	return &memoryPrayerTimes{blob: blob, durable: true}
}

func (m *memoryPrayerTimes) GetPrayerTimes(context.Context) (*models.PrayerTimes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.blob == nil {
		return nil, repository.ErrNotFound
	}
	cp := *m.blob
	return &cp, nil
}

func (m *memoryPrayerTimes) GetUpdatedPrayerTimes(_ context.Context, hash string) (*models.PrayerTimes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.blob == nil {
		return nil, repository.ErrNotFound
	}
	if m.blob.Hash == hash {
		return &models.PrayerTimes{Hash: hash}, nil
	}
	cp := *m.blob
	return &cp, nil
}

func (m *memoryPrayerTimes) UpsertPrayerTimes(_ context.Context, pt models.PrayerTimes) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if m.failWrites > 0 {
		m.failWrites--
		return repository.ErrUnavailable
	}
	if m.durable && m.blob != nil && m.blob.Hash == pt.Hash {
		return repository.ErrBlobUnchanged
	}
	m.blob = &pt
	return nil
}

func (m *memoryPrayerTimes) EvictPrayerTimes(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictions++
	m.blob = nil
	return nil
}

func (m *memoryPrayerTimes) hash() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blob == nil {
		return ""
	}
	return m.blob.Hash
}

func newPrayerTimesFlow(fast, durable repository.PrayerTimesRepository) PrayerTimesFlow {
	return NewPrayerTimesFlow(repository.NewCoordinator("prayer_times", fast, durable, nil))
}

// memoryEvents keeps events in insertion order.
type memoryEvents struct {
	events  []models.Event
	nextID  int
	err     error
	upserts []models.Event
}

func (m *memoryEvents) GetEvents(context.Context) ([]models.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Event(nil), m.events...), nil
}

func (m *memoryEvents) UpsertEvent(_ context.Context, e models.Event) error {
	if m.err != nil {
		return m.err
	}
	m.upserts = append(m.upserts, e)
	if e.ID == 0 {
		m.nextID++
		e.ID = m.nextID
		m.events = append(m.events, e)
		return nil
	}
	for i := range m.events {
		if m.events[i].ID == e.ID {
			m.events[i] = e
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memoryEvents) DeleteEventByID(_ context.Context, id int) (*string, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i, e := range m.events {
		if e.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return e.ImageURL, nil
		}
	}
	return nil, repository.ErrNotFound
}

// memoryAnnouncements accepts posts from known authors only.
type memoryAnnouncements struct {
	authors       map[string]bool
	announcements []models.Announcement
}

func (m *memoryAnnouncements) GetAnnouncements(context.Context) ([]models.Announcement, error) {
	return append([]models.Announcement(nil), m.announcements...), nil
}

func (m *memoryAnnouncements) PostAnnouncement(_ context.Context, a models.Announcement) error {
	if !m.authors[a.Author] {
		return repository.ErrAuthorNotFound
	}
	for _, existing := range m.announcements {
		if existing.Title == a.Title {
			return repository.ErrConflict
		}
	}
	a.ID = len(m.announcements) + 1
	m.announcements = append(m.announcements, a)
	return nil
}

func (m *memoryAnnouncements) EditAnnouncement(_ context.Context, a models.Announcement) error {
	if !m.authors[a.Author] {
		return repository.ErrAuthorNotFound
	}
	for i := range m.announcements {
		if m.announcements[i].ID == a.ID {
			m.announcements[i] = a
			return nil
		}
	}
	return repository.ErrNotFound
}
