package businessflow

import (
	"context"
	"strings"
	"testing"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/repository"
	"github.com/Zayd-McArdle/MasjidApp/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timetable = []byte("date,fajr,sunrise,zuhr,asr,maghrib,isha\n2025-03-14,05:01,06:22,12:13,15:19,18:04,19:25\n")

func TestPrayerTimesSync(t *testing.T) {
	ctx := context.Background()
	hash := utils.ContentDigest(timetable)

	t.Run("unknown returns the current blob", func(t *testing.T) {
		durable := &memoryPrayerTimes{blob: &models.PrayerTimes{Data: timetable, Hash: hash}}
		flow := newPrayerTimesFlow(repository.NewUnimplementedRepository(nil), durable)

		res, err := flow.Sync(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, timetable, res.Data)
		assert.Equal(t, hash, res.Hash)
		assert.False(t, res.Unchanged)
	})

	t.Run("current digest is unchanged", func(t *testing.T) {
		durable := &memoryPrayerTimes{blob: &models.PrayerTimes{Data: timetable, Hash: hash}}
		flow := newPrayerTimesFlow(repository.NewUnimplementedRepository(nil), durable)

		res, err := flow.Sync(ctx, &hash)
		require.NoError(t, err)
		assert.True(t, res.Unchanged)
		assert.Empty(t, res.Data)
		assert.Equal(t, hash, res.Hash)
	})

	t.Run("stale digest returns the new blob", func(t *testing.T) {
		durable := &memoryPrayerTimes{blob: &models.PrayerTimes{Data: timetable, Hash: hash}}
		flow := newPrayerTimesFlow(repository.NewUnimplementedRepository(nil), durable)
		stale := utils.ContentDigest([]byte("last week"))

		res, err := flow.Sync(ctx, &stale)
		require.NoError(t, err)
		assert.False(t, res.Unchanged)
		assert.Equal(t, timetable, res.Data)
	})

	t.Run("four byte blob", func(t *testing.T) {
		blob := []byte{0x01, 0x02, 0x03, 0x04}
		current := utils.ContentDigest(blob)
		other := strings.Repeat("0", utils.DigestLength)
		durable := &memoryPrayerTimes{blob: &models.PrayerTimes{Data: blob, Hash: current}}
		flow := newPrayerTimesFlow(repository.NewUnimplementedRepository(nil), durable)

		res, err := flow.Sync(ctx, &current)
		require.NoError(t, err)
		assert.True(t, res.Unchanged)
		assert.Equal(t, current, res.Hash)

		res, err = flow.Sync(ctx, &other)
		require.NoError(t, err)
		assert.False(t, res.Unchanged)
		assert.Equal(t, blob, res.Data)
		assert.Equal(t, current, res.Hash)
	})

	t.Run("fast tier answers first", func(t *testing.T) {
		fast := &memoryPrayerTimes{blob: &models.PrayerTimes{Data: timetable, Hash: hash}}
		durable := &memoryPrayerTimes{}
		flow := newPrayerTimesFlow(fast, durable)

		_, err := flow.Sync(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, durable.calls)
	})

	t.Run("nothing stored is not found", func(t *testing.T) {
		flow := newPrayerTimesFlow(&memoryPrayerTimes{}, &memoryPrayerTimes{})

		_, err := flow.Sync(ctx, nil)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})

	malformed := []string{"", "abc", strings.ToUpper(hash), hash + "0", strings.Repeat("z", utils.DigestLength)}
	for _, digest := range malformed {
		t.Run("malformed digest "+digest, func(t *testing.T) {
			fast := &memoryPrayerTimes{}
			durable := &memoryPrayerTimes{blob: &models.PrayerTimes{Data: timetable, Hash: hash}}
			flow := newPrayerTimesFlow(fast, durable)

			_, err := flow.Sync(ctx, &digest)
			assert.True(t, IsInvalidRequest(err))
			assert.ErrorIs(t, err, repository.ErrMalformedDigest)
			assert.Zero(t, fast.calls)
			assert.Zero(t, durable.calls)
		})
	}
}

func TestUpsertPrayerTimes(t *testing.T) {
	ctx := context.Background()
	hash := utils.ContentDigest(timetable)

	t.Run("first publish is stored on both tiers", func(t *testing.T) {
		fast, durable := &memoryPrayerTimes{}, durablePrayerTimes(nil)
		flow := newPrayerTimesFlow(fast, durable)

		res, err := flow.UpsertPrayerTimes(ctx, &dto.UpsertPrayerTimesRequest{Data: timetable, Hash: hash})
		require.NoError(t, err)
		assert.Equal(t, hash, res.Hash)
		require.NotNil(t, durable.blob)
		assert.Equal(t, timetable, durable.blob.Data)
		require.NotNil(t, fast.blob)
		assert.Equal(t, hash, fast.blob.Hash)
	})

	t.Run("same digest as stored is a conflict", func(t *testing.T) {
		durable := durablePrayerTimes(&models.PrayerTimes{Data: timetable, Hash: hash})
		flow := newPrayerTimesFlow(repository.NewUnimplementedRepository(nil), durable)

		_, err := flow.UpsertPrayerTimes(ctx, &dto.UpsertPrayerTimesRequest{Data: timetable, Hash: hash})
		assert.True(t, IsConflict(err))
		assert.ErrorIs(t, err, repository.ErrBlobUnchanged)
		assert.Equal(t, CodeConflict, CodeOf(err))
	})

	t.Run("replacing with a new blob", func(t *testing.T) {
		durable := durablePrayerTimes(&models.PrayerTimes{Data: []byte("old"), Hash: utils.ContentDigest([]byte("old"))})
		flow := newPrayerTimesFlow(repository.NewUnimplementedRepository(nil), durable)

		_, err := flow.UpsertPrayerTimes(ctx, &dto.UpsertPrayerTimesRequest{Data: timetable, Hash: hash})
		require.NoError(t, err)
		assert.Equal(t, hash, durable.blob.Hash)

		res, err := flow.Sync(ctx, &hash)
		require.NoError(t, err)
		assert.True(t, res.Unchanged)
	})

	invalid := []struct {
		name string
		req  *dto.UpsertPrayerTimesRequest
		err  error
	}{
		{"nil request", nil, ErrNilRequest},
		{"empty payload", &dto.UpsertPrayerTimesRequest{Hash: utils.ContentDigest(nil)}, ErrEmptyPayload},
		{"malformed hash", &dto.UpsertPrayerTimesRequest{Data: timetable, Hash: "not-a-digest"}, repository.ErrMalformedDigest},
		{"mismatched hash", &dto.UpsertPrayerTimesRequest{Data: timetable, Hash: utils.ContentDigest([]byte("other"))}, repository.ErrDigestMismatch},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			fast, durable := &memoryPrayerTimes{}, &memoryPrayerTimes{}
			flow := newPrayerTimesFlow(fast, durable)

			_, err := flow.UpsertPrayerTimes(ctx, tt.req)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, IsInvalidRequest(err))
			assert.Zero(t, fast.calls)
			assert.Zero(t, durable.calls)
		})
	}

	t.Run("conflict is decided by the durable tier", func(t *testing.T) {
		old := []byte("last week")
		fast := &memoryPrayerTimes{blob: &models.PrayerTimes{Data: timetable, Hash: hash}}
		durable := durablePrayerTimes(&models.PrayerTimes{Data: old, Hash: utils.ContentDigest(old)})
		flow := newPrayerTimesFlow(fast, durable)

		_, err := flow.UpsertPrayerTimes(ctx, &dto.UpsertPrayerTimesRequest{Data: timetable, Hash: hash})
		require.NoError(t, err)
		assert.Equal(t, hash, durable.hash())
	})

	t.Run("retry after a failed durable write", func(t *testing.T) {
		old := []byte("last week")
		oldHash := utils.ContentDigest(old)
		fast := &memoryPrayerTimes{blob: &models.PrayerTimes{Data: old, Hash: oldHash}}
		durable := durablePrayerTimes(&models.PrayerTimes{Data: old, Hash: oldHash})
		durable.failWrites = 1
		flow := newPrayerTimesFlow(fast, durable)
		req := &dto.UpsertPrayerTimesRequest{Data: timetable, Hash: hash}

		_, err := flow.UpsertPrayerTimes(ctx, req)
		assert.Equal(t, CodeUnavailable, CodeOf(err))
		assert.Equal(t, 1, fast.evictions)
		assert.Empty(t, fast.hash())

		res, err := flow.Sync(ctx, &oldHash)
		require.NoError(t, err)
		assert.True(t, res.Unchanged, "readers keep the persisted blob")
		assert.Equal(t, oldHash, res.Hash)

		_, err = flow.UpsertPrayerTimes(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, hash, durable.hash())
		assert.Equal(t, hash, fast.hash())
	})

	t.Run("durable failure is reported", func(t *testing.T) {
		durable := &memoryPrayerTimes{err: repository.ErrUnavailable}
		flow := newPrayerTimesFlow(repository.NewUnimplementedRepository(nil), durable)

		_, err := flow.UpsertPrayerTimes(ctx, &dto.UpsertPrayerTimesRequest{Data: timetable, Hash: hash})
		assert.Equal(t, CodeUnavailable, CodeOf(err))
	})
}
