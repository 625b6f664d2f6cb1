package repository

import (
	"context"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/utils"
	"github.com/redis/go-redis/v9"
)

// cachedPrayerTimes is the fast tier's form of the blob: the zstd frame of
// the payload next to the digest of the uncompressed payload.
type cachedPrayerTimes struct {
	Frame     []byte    `cbor:"1,keyasint"`
	Hash      string    `cbor:"2,keyasint"`
	UpdatedAt time.Time `cbor:"3,keyasint,omitempty"`
}

// PrayerTimesRedisRepository is the fast tier for the prayer times blob. It
// holds one key with the latest published pair.
type PrayerTimesRedisRepository struct {
	RedisBase
}

var (
	_ PrayerTimesRepository = (*PrayerTimesRedisRepository)(nil)
	_ PrayerTimesEvicter    = (*PrayerTimesRedisRepository)(nil)
)

func NewPrayerTimesRedisRepository(client redis.UniversalClient, prefix string, ttl time.Duration) *PrayerTimesRedisRepository {
	return &PrayerTimesRedisRepository{RedisBase: NewRedisBase(client, prefix, "prayer_times", ttl)}
}

func (r *PrayerTimesRedisRepository) currentKey() string {
	return r.Prefix + r.Feature + ":current"
}

func (r *PrayerTimesRedisRepository) GetPrayerTimes(ctx context.Context) (*models.PrayerTimes, error) {
	var cached cachedPrayerTimes
	if err := r.load(ctx, OpGetPrayerTimes, r.currentKey(), &cached); err != nil {
		return nil, err
	}
	data, err := decompressBlob(cached.Frame)
	if err != nil {
		return nil, opError(TierFast, OpGetPrayerTimes, ErrUnavailable, err)
	}
	return &models.PrayerTimes{Data: data, Hash: cached.Hash, UpdatedAt: cached.UpdatedAt}, nil
}

func (r *PrayerTimesRedisRepository) GetUpdatedPrayerTimes(ctx context.Context, hash string) (*models.PrayerTimes, error) {
	var cached cachedPrayerTimes
	if err := r.load(ctx, OpGetUpdatedPrayerTimes, r.currentKey(), &cached); err != nil {
		return nil, err
	}
	if cached.Hash == hash {
		return &models.PrayerTimes{Hash: cached.Hash, UpdatedAt: cached.UpdatedAt}, nil
	}
	data, err := decompressBlob(cached.Frame)
	if err != nil {
		return nil, opError(TierFast, OpGetUpdatedPrayerTimes, ErrUnavailable, err)
	}
	return &models.PrayerTimes{Data: data, Hash: cached.Hash, UpdatedAt: cached.UpdatedAt}, nil
}

// UpsertPrayerTimes replaces the cached pair and bumps the generation.
func (r *PrayerTimesRedisRepository) UpsertPrayerTimes(ctx context.Context, pt models.PrayerTimes) error {
	updatedAt := pt.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = utils.UTCNow()
	}
	return r.replace(ctx, OpUpsertPrayerTimes, r.currentKey(), cachedPrayerTimes{
		Frame:     compressBlob(pt.Data),
		Hash:      pt.Hash,
		UpdatedAt: updatedAt,
	})
}

// StorePrayerTimes caches a pair read from the durable tier. It leaves the
// generation alone.
func (r *PrayerTimesRedisRepository) StorePrayerTimes(ctx context.Context, pt models.PrayerTimes) error {
	return r.store(ctx, OpGetPrayerTimes, r.currentKey(), cachedPrayerTimes{
		Frame:     compressBlob(pt.Data),
		Hash:      pt.Hash,
		UpdatedAt: pt.UpdatedAt,
	})
}

// EvictPrayerTimes deletes the cached pair so reads fall through to the
// durable tier.
func (r *PrayerTimesRedisRepository) EvictPrayerTimes(ctx context.Context) error {
	return r.invalidate(ctx, OpUpsertPrayerTimes)
}
