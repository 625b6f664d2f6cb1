// Package scheduler runs background jobs alongside the HTTP server.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cacheWarmRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "masjidapp_cache_warm_runs_total",
		Help: "Cache warm attempts per feature, partitioned by result",
	},
	[]string{"feature", "result"},
)

// DurableSources are the tiers the warmer reads from.
type DurableSources struct {
	Events        repository.EventsRepository
	PrayerTimes   repository.PrayerTimesRepository
	ImamQuestions repository.ImamQuestionsRepository
	Announcements repository.AnnouncementsRepository
}

// FastTargets are the tiers the warmer writes to. A nil target is skipped.
type FastTargets struct {
	Events interface {
		StoreEvents(ctx context.Context, events []models.Event) error
	}
	PrayerTimes interface {
		StorePrayerTimes(ctx context.Context, prayerTimes models.PrayerTimes) error
	}
	ImamQuestions interface {
		StoreAnsweredQuestions(ctx context.Context, questions []models.ImamQuestion) error
	}
	Announcements interface {
		StoreAnnouncements(ctx context.Context, announcements []models.Announcement) error
	}
}

// generational is implemented by fast targets that count how often a
// feature's keys are replaced or dropped by writes.
type generational interface {
	Generation(ctx context.Context) (int64, error)
	Invalidate(ctx context.Context) error
}

// errWriteDuringWarm marks a pass whose result was dropped because a write
// touched the feature while it ran.
var errWriteDuringWarm = errors.New("feature written during warm pass")

// CacheWarmer copies the most requested durable reads into the fast tier on
// a cron schedule.
type CacheWarmer struct {
	durable DurableSources
	fast    FastTargets
	spec    string
	timeout time.Duration
	logger  *zap.Logger
}

func NewCacheWarmer(durable DurableSources, fast FastTargets, spec string, timeout time.Duration, logger *zap.Logger) *CacheWarmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CacheWarmer{
		durable: durable,
		fast:    fast,
		spec:    spec,
		timeout: timeout,
		logger:  logger.With(zap.String("component", "cache_warmer")),
	}
}

// Start schedules RunOnce and returns a function that stops the schedule and
// waits for a running pass to finish.
func (w *CacheWarmer) Start(parent context.Context, warmNow bool) (func(), error) {
	ctx, cancel := context.WithCancel(parent)

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(w.spec, func() { w.run(ctx) }); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid cache warm schedule %q: %w", w.spec, err)
	}

	if warmNow {
		go w.run(ctx)
	}
	c.Start()
	w.logger.Info("cache warmer started", zap.String("spec", w.spec))

	return func() {
		cancel()
		<-c.Stop().Done()
		w.logger.Info("cache warmer stopped")
	}, nil
}

func (w *CacheWarmer) run(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, w.timeout)
	defer cancel()

	if err := w.RunOnce(ctx); err != nil {
		w.logger.Warn("cache warm pass incomplete", zap.Error(err))
	}
}

// RunOnce refreshes every configured feature. A feature with nothing stored
// is skipped. Failures of one feature do not stop the others. When a write
// touches a feature during its refresh the stored copy is dropped again.
func (w *CacheWarmer) RunOnce(ctx context.Context) error {
	var errs []error

	if w.fast.Events != nil && w.durable.Events != nil {
		errs = append(errs, w.warm(ctx, "events", w.fast.Events, func() error {
			events, err := w.durable.Events.GetEvents(ctx)
			if err != nil {
				return err
			}
			return w.fast.Events.StoreEvents(ctx, events)
		}))
	}

	if w.fast.PrayerTimes != nil && w.durable.PrayerTimes != nil {
		errs = append(errs, w.warm(ctx, "prayer_times", w.fast.PrayerTimes, func() error {
			current, err := w.durable.PrayerTimes.GetPrayerTimes(ctx)
			if err != nil {
				return err
			}
			if current == nil {
				return repository.ErrNotFound
			}
			return w.fast.PrayerTimes.StorePrayerTimes(ctx, *current)
		}))
	}

	if w.fast.ImamQuestions != nil && w.durable.ImamQuestions != nil {
		errs = append(errs, w.warm(ctx, "imam_questions", w.fast.ImamQuestions, func() error {
			questions, err := w.durable.ImamQuestions.GetAnsweredQuestions(ctx)
			if err != nil {
				return err
			}
			return w.fast.ImamQuestions.StoreAnsweredQuestions(ctx, questions)
		}))
	}

	if w.fast.Announcements != nil && w.durable.Announcements != nil {
		errs = append(errs, w.warm(ctx, "announcements", w.fast.Announcements, func() error {
			announcements, err := w.durable.Announcements.GetAnnouncements(ctx)
			if err != nil {
				return err
			}
			return w.fast.Announcements.StoreAnnouncements(ctx, announcements)
		}))
	}

	return errors.Join(errs...)
}

func (w *CacheWarmer) warm(ctx context.Context, feature string, target any, refresh func() error) error {
	err := w.guarded(ctx, target, refresh)
	switch {
	case err == nil:
		cacheWarmRuns.WithLabelValues(feature, "ok").Inc()
		w.logger.Debug("cache warmed", zap.String("feature", feature))
		return nil
	case errors.Is(err, errWriteDuringWarm):
		cacheWarmRuns.WithLabelValues(feature, "superseded").Inc()
		w.logger.Debug("cache warm superseded by a write", zap.String("feature", feature))
		return nil
	case repository.IsNotFound(err):
		cacheWarmRuns.WithLabelValues(feature, "empty").Inc()
		return nil
	default:
		cacheWarmRuns.WithLabelValues(feature, "error").Inc()
		return fmt.Errorf("%s: %w", feature, err)
	}
}

// guarded runs refresh between two generation reads of target. A changed
// generation means a write ran concurrently and the refreshed copy may
// predate it, so the feature is invalidated.
func (w *CacheWarmer) guarded(ctx context.Context, target any, refresh func() error) error {
	g, ok := target.(generational)
	if !ok {
		return refresh()
	}
	before, err := g.Generation(ctx)
	if err != nil {
		return err
	}
	if err := refresh(); err != nil {
		return err
	}
	after, err := g.Generation(ctx)
	if err == nil && after == before {
		return nil
	}
	if ierr := g.Invalidate(ctx); ierr != nil {
		return ierr
	}
	if err != nil {
		return err
	}
	return errWriteDuringWarm
}
