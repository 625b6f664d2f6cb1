package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisFastTier(t *testing.T) {
	ctx := context.Background()

	t.Run("cached list is served without the durable tier", func(t *testing.T) {
		_, client := newMiniredis(t)
		fast := NewEventsRedisRepository(client, "masjidapp:", time.Minute)
		want := []models.Event{{ID: 1, Title: "Jumuah khutbah"}, {ID: 2, Title: "Quran circle"}}
		require.NoError(t, fast.StoreEvents(ctx, want))

		durable := &mockEvents{}
		c := NewCoordinator[EventsRepository]("events", fast, durable, nil)
		got, err := ReadMany(ctx, c, OpGetEvents, func(ctx context.Context, r EventsRepository) ([]models.Event, error) {
			return r.GetEvents(ctx)
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Quran circle", got[1].Title)
		durable.AssertNotCalled(t, "GetEvents", mock.Anything)
	})

	t.Run("miss is not found", func(t *testing.T) {
		_, client := newMiniredis(t)
		_, err := NewAnnouncementsRedisRepository(client, "masjidapp:", time.Minute).GetAnnouncements(ctx)
		assert.True(t, IsNotFound(err))
	})

	t.Run("prayer times conditional read", func(t *testing.T) {
		mr, client := newMiniredis(t)
		repo := NewPrayerTimesRedisRepository(client, "masjidapp:", time.Minute)
		payload := []byte{0x01, 0x02, 0x03, 0x04}
		hash := utils.ContentDigest(payload)
		require.NoError(t, repo.UpsertPrayerTimes(ctx, models.PrayerTimes{Data: payload, Hash: hash}))
		assert.True(t, mr.Exists("masjidapp:prayer_times:current"))

		same, err := repo.GetUpdatedPrayerTimes(ctx, hash)
		require.NoError(t, err)
		assert.True(t, same.Unchanged())
		assert.Equal(t, hash, same.Hash)

		stale, err := repo.GetUpdatedPrayerTimes(ctx, utils.ContentDigest([]byte("old")))
		require.NoError(t, err)
		assert.Equal(t, payload, stale.Data)
		assert.Equal(t, hash, stale.Hash)

		require.NoError(t, repo.EvictPrayerTimes(ctx))
		_, err = repo.GetPrayerTimes(ctx)
		assert.True(t, IsNotFound(err))
	})

	t.Run("invalidation drops only the feature's keys", func(t *testing.T) {
		mr, client := newMiniredis(t)
		questions := NewImamQuestionsRedisRepository(client, "masjidapp:", time.Minute)
		events := NewEventsRedisRepository(client, "masjidapp:", time.Minute)
		require.NoError(t, questions.StoreAnsweredQuestions(ctx, []models.ImamQuestion{{ID: 1, Topic: "zakat"}}))
		require.NoError(t, mr.Set("masjidapp:imam_questions:get_all_imam_questions_by_topic:zakat", "x"))
		require.NoError(t, events.StoreEvents(ctx, []models.Event{{ID: 1}}))
		require.NoError(t, mr.Set("other:imam_questions:get_answered_imam_questions", "x"))

		require.NoError(t, questions.DeleteQuestionByID(ctx, 1))

		assert.False(t, mr.Exists("masjidapp:imam_questions:get_answered_imam_questions"))
		assert.False(t, mr.Exists("masjidapp:imam_questions:get_all_imam_questions_by_topic:zakat"))
		assert.True(t, mr.Exists("masjidapp:events:get_events"))
		assert.True(t, mr.Exists("other:imam_questions:get_answered_imam_questions"))
	})

	t.Run("writes bump the generation", func(t *testing.T) {
		_, client := newMiniredis(t)
		events := NewEventsRedisRepository(client, "masjidapp:", time.Minute)
		prayerTimes := NewPrayerTimesRedisRepository(client, "masjidapp:", time.Minute)

		gen, err := events.Generation(ctx)
		require.NoError(t, err)
		assert.Zero(t, gen)

		require.NoError(t, events.StoreEvents(ctx, []models.Event{{ID: 1}}))
		gen, err = events.Generation(ctx)
		require.NoError(t, err)
		assert.Zero(t, gen, "warm stores leave the generation alone")

		require.NoError(t, events.UpsertEvent(ctx, models.Event{}))
		gen, err = events.Generation(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), gen)

		require.NoError(t, prayerTimes.StorePrayerTimes(ctx, models.PrayerTimes{Data: []byte("a"), Hash: "h1"}))
		require.NoError(t, prayerTimes.UpsertPrayerTimes(ctx, models.PrayerTimes{Data: []byte("b"), Hash: "h2"}))
		gen, err = prayerTimes.Generation(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), gen)
	})
}

func TestRedisKeys(t *testing.T) {
	base := NewRedisBase(nil, "masjidapp:", "imam_questions", time.Minute)

	assert.Equal(t, "masjidapp:imam_questions:get_answered_imam_questions", base.key(OpGetAnsweredQuestions))
	assert.Equal(t,
		"masjidapp:imam_questions:get_all_imam_questions_by_topic_and_school_of_thought:zakat:Hanafi",
		base.key(OpGetAllQuestionsByTopicAndSchool, "zakat", "Hanafi"))
}

func TestRedisUnavailable(t *testing.T) {
	ctx := context.Background()
	client := unreachableClient(t)

	t.Run("read", func(t *testing.T) {
		repo := NewAnnouncementsRedisRepository(client, "", time.Minute)
		_, err := repo.GetAnnouncements(ctx)
		assert.True(t, IsUnavailable(err))

		var opErr *OpError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, TierFast, opErr.Tier)
		assert.Equal(t, OpGetAnnouncements, opErr.Op)
	})

	t.Run("store", func(t *testing.T) {
		repo := NewPrayerTimesRedisRepository(client, "", time.Minute)
		err := repo.UpsertPrayerTimes(ctx, models.PrayerTimes{Data: []byte("x"), Hash: "h"})
		assert.True(t, IsUnavailable(err))
	})

	t.Run("invalidate", func(t *testing.T) {
		repo := NewImamQuestionsRedisRepository(client, "", time.Minute)
		err := repo.DeleteQuestionByID(ctx, 1)
		assert.True(t, IsUnavailable(err))
	})

	t.Run("coordinator falls back to durable", func(t *testing.T) {
		durable := &mockEvents{}
		want := []models.Event{{ID: 3, Title: "Open day"}}
		durable.On("GetEvents", ctx).Return(want, nil).Once()

		c := NewCoordinator[EventsRepository]("events", NewEventsRedisRepository(client, "", time.Minute), durable, nil)
		got, err := ReadMany(ctx, c, OpGetEvents, func(ctx context.Context, r EventsRepository) ([]models.Event, error) {
			return r.GetEvents(ctx)
		})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestCodec(t *testing.T) {
	t.Run("encoding is deterministic", func(t *testing.T) {
		q := models.ImamQuestion{ID: 1, Title: "Travel prayer", Topic: "salah", Description: "How many rakat?"}
		a, err := encodeValue(q)
		require.NoError(t, err)
		b, err := encodeValue(q)
		require.NoError(t, err)
		assert.Equal(t, a, b)

		var decoded models.ImamQuestion
		require.NoError(t, decodeValue(a, &decoded))
		assert.Equal(t, q.Title, decoded.Title)
	})

	t.Run("empty blob stays non-nil", func(t *testing.T) {
		data, err := decompressBlob(compressBlob([]byte{}))
		require.NoError(t, err)
		assert.NotNil(t, data)
		assert.Empty(t, data)
	})

	t.Run("corrupt frame", func(t *testing.T) {
		_, err := decompressBlob([]byte("not zstd"))
		assert.Error(t, err)
	})
}

func TestUnimplementedRepository(t *testing.T) {
	repo := NewUnimplementedRepository(nil)
	_, err := repo.GetEvents(context.Background())
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.True(t, IsUnavailable(err))
	assert.Error(t, repo.UpsertPrayerTimes(context.Background(), models.PrayerTimes{}))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "none", KindOf(nil))
	assert.Equal(t, "not_found", KindOf(ErrAuthorNotFound))
	assert.Equal(t, "invalid", KindOf(ErrMalformedDigest))
	assert.Equal(t, "conflict", KindOf(ErrBlobUnchanged))
	assert.Equal(t, "unavailable", KindOf(opError(TierFast, OpGetEvents, ErrNotImplemented, nil)))
	assert.Equal(t, "unknown", KindOf(assert.AnError))
}

func TestOpErrorMessage(t *testing.T) {
	err := opError(TierDurable, OpEditAnnouncement, ErrNotFound, nil)
	assert.Equal(t, "durable edit_announcement: not found", err.Error())

	err = opError(TierFast, OpGetEvents, ErrUnavailable, assert.AnError)
	assert.Contains(t, err.Error(), "fast get_events: unavailable: ")
	assert.ErrorIs(t, err, assert.AnError)
}
