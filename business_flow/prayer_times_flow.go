package businessflow

import (
	"context"
	"errors"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	"github.com/Zayd-McArdle/MasjidApp/models"
	"github.com/Zayd-McArdle/MasjidApp/repository"
	"github.com/Zayd-McArdle/MasjidApp/utils"
)

// PrayerTimesFlow serves the prayer timetable blob with conditional reads and
// guards producer writes with a content digest.
type PrayerTimesFlow interface {
	// Sync returns the current blob when known is nil. Otherwise it returns
	// Unchanged if known is still the current digest, or the new blob.
	Sync(ctx context.Context, known *string) (*dto.PrayerTimesSync, error)
	UpsertPrayerTimes(ctx context.Context, req *dto.UpsertPrayerTimesRequest) (*dto.UpsertPrayerTimesResponse, error)
}

type PrayerTimesFlowImpl struct {
	prayerTimes *repository.Coordinator[repository.PrayerTimesRepository]
}

func NewPrayerTimesFlow(prayerTimes *repository.Coordinator[repository.PrayerTimesRepository]) PrayerTimesFlow {
	return &PrayerTimesFlowImpl{prayerTimes: prayerTimes}
}

func (f *PrayerTimesFlowImpl) Sync(ctx context.Context, known *string) (*dto.PrayerTimesSync, error) {
	if known == nil {
		current, err := f.current(ctx)
		if err != nil {
			return nil, wrap("failed to get prayer times", err)
		}
		return &dto.PrayerTimesSync{Data: current.Data, Hash: current.Hash}, nil
	}

	if !utils.ValidDigest(*known) {
		return nil, wrap("invalid prayer times hash", repository.ErrMalformedDigest)
	}
	current, err := f.since(ctx, *known)
	if err != nil {
		return nil, wrap("failed to get updated prayer times", err)
	}
	if current.Unchanged() {
		return &dto.PrayerTimesSync{Hash: current.Hash, Unchanged: true}, nil
	}
	return &dto.PrayerTimesSync{Data: current.Data, Hash: current.Hash}, nil
}

// UpsertPrayerTimes replaces the stored blob. The declared hash must be the
// digest of the payload. The durable tier rejects a hash equal to the one it
// already stores. When the durable write fails the fast tier's copy is
// dropped so readers never see a blob that was not persisted.
func (f *PrayerTimesFlowImpl) UpsertPrayerTimes(ctx context.Context, req *dto.UpsertPrayerTimesRequest) (*dto.UpsertPrayerTimesResponse, error) {
	if req == nil {
		return nil, wrap("invalid prayer times", ErrNilRequest)
	}
	if len(req.Data) == 0 {
		return nil, wrap("invalid prayer times", ErrEmptyPayload)
	}
	if !utils.ValidDigest(req.Hash) {
		return nil, wrap("invalid prayer times hash", repository.ErrMalformedDigest)
	}
	if utils.ContentDigest(req.Data) != req.Hash {
		return nil, wrap("invalid prayer times hash", repository.ErrDigestMismatch)
	}

	blob := models.PrayerTimes{Data: req.Data, Hash: req.Hash}
	err := repository.Write(ctx, f.prayerTimes, repository.OpUpsertPrayerTimes,
		func(ctx context.Context, r repository.PrayerTimesRepository) error {
			return r.UpsertPrayerTimes(ctx, blob)
		})
	switch {
	case errors.Is(err, repository.ErrBlobUnchanged):
		return nil, wrap("prayer times already up to date", err)
	case err != nil:
		f.evictFast(ctx)
		return nil, wrap("failed to save prayer times", err)
	}
	return &dto.UpsertPrayerTimesResponse{Message: "Prayer times updated successfully", Hash: req.Hash}, nil
}

// evictFast removes the fast tier's copy of the blob. Failure only leaves the
// copy to expire.
func (f *PrayerTimesFlowImpl) evictFast(ctx context.Context) {
	if e, ok := f.prayerTimes.Fast().(repository.PrayerTimesEvicter); ok {
		_ = e.EvictPrayerTimes(ctx)
	}
}

func (f *PrayerTimesFlowImpl) current(ctx context.Context) (*models.PrayerTimes, error) {
	return repository.Read(ctx, f.prayerTimes, repository.OpGetPrayerTimes,
		func(ctx context.Context, r repository.PrayerTimesRepository) (*models.PrayerTimes, error) {
			return present(r.GetPrayerTimes(ctx))
		})
}

func (f *PrayerTimesFlowImpl) since(ctx context.Context, hash string) (*models.PrayerTimes, error) {
	return repository.Read(ctx, f.prayerTimes, repository.OpGetUpdatedPrayerTimes,
		func(ctx context.Context, r repository.PrayerTimesRepository) (*models.PrayerTimes, error) {
			return present(r.GetUpdatedPrayerTimes(ctx, hash))
		})
}

// present turns a nil blob into NotFound so the fast tier falls through.
func present(p *models.PrayerTimes, err error) (*models.PrayerTimes, error) {
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, repository.ErrNotFound
	}
	return p, nil
}
