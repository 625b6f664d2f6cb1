package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// durableStub answers every read from fixed values and falls back to the
// unimplemented repository for everything else.
type durableStub struct {
	*repository.UnimplementedRepository
	events        []models.Event
	prayerTimes   *models.PrayerTimes
	questions     []models.ImamQuestion
	announcements []models.Announcement
	err           error
}

func newDurableStub() *durableStub {
	return &durableStub{UnimplementedRepository: repository.NewUnimplementedRepository(zap.NewNop())}
}

func (d *durableStub) GetEvents(context.Context) ([]models.Event, error) {
	return d.events, d.err
}

func (d *durableStub) GetPrayerTimes(context.Context) (*models.PrayerTimes, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.prayerTimes == nil {
		return nil, repository.ErrNotFound
	}
	return d.prayerTimes, nil
}

func (d *durableStub) GetAnsweredQuestions(context.Context) ([]models.ImamQuestion, error) {
	return d.questions, d.err
}

func (d *durableStub) GetAnnouncements(context.Context) ([]models.Announcement, error) {
	return d.announcements, d.err
}

type fastRecorder struct {
	mu            sync.Mutex
	events        []models.Event
	prayerTimes   *models.PrayerTimes
	questions     []models.ImamQuestion
	announcements []models.Announcement
}

func (f *fastRecorder) StoreEvents(_ context.Context, events []models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = events
	return nil
}

func (f *fastRecorder) StorePrayerTimes(_ context.Context, prayerTimes models.PrayerTimes) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prayerTimes = &prayerTimes
	return nil
}

func (f *fastRecorder) StoreAnsweredQuestions(_ context.Context, questions []models.ImamQuestion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions = questions
	return nil
}

func (f *fastRecorder) StoreAnnouncements(_ context.Context, announcements []models.Announcement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.announcements = announcements
	return nil
}

func (f *fastRecorder) storedEvents() []models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events
}

// generationalEvents counts writes the way the redis tier does. A write
// scheduled with writeDuringStore lands while the warmer stores.
type generationalEvents struct {
	fastRecorder
	generation       int64
	writeDuringStore bool
	invalidations    int
}

func (g *generationalEvents) Generation(context.Context) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation, nil
}

func (g *generationalEvents) Invalidate(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generation++
	g.invalidations++
	g.events = nil
	return nil
}

func (g *generationalEvents) StoreEvents(ctx context.Context, events []models.Event) error {
	if err := g.fastRecorder.StoreEvents(ctx, events); err != nil {
		return err
	}
	if g.writeDuringStore {
		g.mu.Lock()
		g.generation++
		g.mu.Unlock()
	}
	return nil
}

func sources(d *durableStub) DurableSources {
	return DurableSources{Events: d, PrayerTimes: d, ImamQuestions: d, Announcements: d}
}

func targets(f *fastRecorder) FastTargets {
	return FastTargets{Events: f, PrayerTimes: f, ImamQuestions: f, Announcements: f}
}

func TestCacheWarmerRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("copies every feature into the fast tier", func(t *testing.T) {
		durable := newDurableStub()
		durable.events = []models.Event{{ID: 1, Title: "Eid prayer"}}
		durable.prayerTimes = &models.PrayerTimes{Data: []byte("frame"), Hash: "abc"}
		durable.questions = []models.ImamQuestion{{ID: 4, Topic: "Zakat"}}
		durable.announcements = []models.Announcement{{ID: 9, Title: "Parking"}}
		fast := &fastRecorder{}

		w := NewCacheWarmer(sources(durable), targets(fast), "@every 1h", time.Second, nil)
		require.NoError(t, w.RunOnce(ctx))

		assert.Equal(t, durable.events, fast.events)
		require.NotNil(t, fast.prayerTimes)
		assert.Equal(t, "abc", fast.prayerTimes.Hash)
		assert.Equal(t, durable.questions, fast.questions)
		assert.Equal(t, durable.announcements, fast.announcements)
	})

	t.Run("nothing stored is not an error", func(t *testing.T) {
		durable := newDurableStub()
		durable.err = repository.ErrNotFound
		fast := &fastRecorder{}

		w := NewCacheWarmer(sources(durable), targets(fast), "@every 1h", time.Second, zap.NewNop())
		assert.NoError(t, w.RunOnce(ctx))
		assert.Nil(t, fast.events)
		assert.Nil(t, fast.prayerTimes)
	})

	t.Run("failures name the feature and do not stop the others", func(t *testing.T) {
		durable := newDurableStub()
		durable.events = []models.Event{{ID: 2}}
		fast := &fastRecorder{}
		src := sources(durable)
		src.Announcements = repository.NewUnimplementedRepository(zap.NewNop())

		w := NewCacheWarmer(src, targets(fast), "@every 1h", time.Second, zap.NewNop())
		err := w.RunOnce(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "announcements:")
		assert.True(t, repository.IsUnavailable(err))
		assert.Equal(t, durable.events, fast.events)
	})

	t.Run("unset targets are skipped", func(t *testing.T) {
		durable := newDurableStub()
		durable.err = repository.ErrUnavailable

		w := NewCacheWarmer(sources(durable), FastTargets{}, "@every 1h", time.Second, zap.NewNop())
		assert.NoError(t, w.RunOnce(ctx))
	})
}

func TestCacheWarmerGeneration(t *testing.T) {
	ctx := context.Background()
	durable := newDurableStub()
	durable.events = []models.Event{{ID: 1, Title: "Eid prayer"}}

	t.Run("quiet feature keeps the warmed copy", func(t *testing.T) {
		fast := &generationalEvents{generation: 4}
		w := NewCacheWarmer(DurableSources{Events: durable}, FastTargets{Events: fast}, "@every 1h", time.Second, zap.NewNop())

		require.NoError(t, w.RunOnce(ctx))
		assert.Equal(t, durable.events, fast.storedEvents())
		assert.Zero(t, fast.invalidations)
	})

	t.Run("write during the pass drops the warmed copy", func(t *testing.T) {
		fast := &generationalEvents{writeDuringStore: true}
		w := NewCacheWarmer(DurableSources{Events: durable}, FastTargets{Events: fast}, "@every 1h", time.Second, zap.NewNop())

		require.NoError(t, w.RunOnce(ctx))
		assert.Nil(t, fast.storedEvents())
		assert.Equal(t, 1, fast.invalidations)
	})
}

func TestCacheWarmerStart(t *testing.T) {
	t.Run("rejects an invalid schedule", func(t *testing.T) {
		w := NewCacheWarmer(DurableSources{}, FastTargets{}, "not a schedule", time.Second, zap.NewNop())
		stop, err := w.Start(context.Background(), false)
		assert.Error(t, err)
		assert.Nil(t, stop)
	})

	t.Run("warms immediately when asked", func(t *testing.T) {
		durable := newDurableStub()
		durable.events = []models.Event{{ID: 3}}
		fast := &fastRecorder{}

		w := NewCacheWarmer(DurableSources{Events: durable}, FastTargets{Events: fast}, "@every 1h", time.Second, zap.NewNop())
		stop, err := w.Start(context.Background(), true)
		require.NoError(t, err)
		defer stop()

		assert.Eventually(t, func() bool { return len(fast.storedEvents()) == 1 }, time.Second, 10*time.Millisecond)
	})
}
