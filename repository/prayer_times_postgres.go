package repository

import (
	"context"

	"github.com/Zayd-McArdle/MasjidApp/models"
	"gorm.io/gorm"
)

// PrayerTimesPostgresRepository is the durable tier for the prayer times
// blob. The payload and its digest live in one row and are replaced together.
type PrayerTimesPostgresRepository struct {
	PostgresBase
}

var _ PrayerTimesRepository = (*PrayerTimesPostgresRepository)(nil)

func NewPrayerTimesPostgresRepository(db *gorm.DB) *PrayerTimesPostgresRepository {
	return &PrayerTimesPostgresRepository{PostgresBase: NewPostgresBase(db)}
}

func (r *PrayerTimesPostgresRepository) GetPrayerTimes(ctx context.Context) (*models.PrayerTimes, error) {
	rows, err := list[models.PrayerTimes](ctx, r.PostgresBase, OpGetPrayerTimes)
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// GetUpdatedPrayerTimes lets the stored function compare digests. It
// returns a null data column when hash is current.
func (r *PrayerTimesPostgresRepository) GetUpdatedPrayerTimes(ctx context.Context, hash string) (*models.PrayerTimes, error) {
	rows, err := list[models.PrayerTimes](ctx, r.PostgresBase, OpGetUpdatedPrayerTimes, hash)
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// UpsertPrayerTimes replaces the stored pair. Publishing the digest that is
// already stored fails with ErrBlobUnchanged. The comparison and the write
// run in one transaction.
func (r *PrayerTimesPostgresRepository) UpsertPrayerTimes(ctx context.Context, pt models.PrayerTimes) error {
	return r.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := r.GetUpdatedPrayerTimes(ctx, pt.Hash)
		switch {
		case err == nil && current.Unchanged():
			return opError(TierDurable, OpUpsertPrayerTimes, ErrBlobUnchanged, nil)
		case err != nil && !IsNotFound(err):
			return err
		}
		return r.exec(ctx, OpUpsertPrayerTimes, pt.Data, pt.Hash)
	})
}
