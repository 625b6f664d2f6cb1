package businessflow

import (
	"context"
	"testing"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	"github.com/Zayd-McArdle/MasjidApp/repository"
	"github.com/Zayd-McArdle/MasjidApp/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementsFlow(t *testing.T) {
	ctx := context.Background()

	newFlow := func() (AnnouncementsFlow, *memoryAnnouncements) {
		durable := &memoryAnnouncements{authors: map[string]bool{"secretary": true}}
		c := repository.NewCoordinator[repository.AnnouncementsRepository]("announcements", repository.NewUnimplementedRepository(nil), durable, nil)
		return NewAnnouncementsFlow(c), durable
	}

	t.Run("post and list", func(t *testing.T) {
		flow, _ := newFlow()
		err := flow.PostAnnouncement(ctx, &dto.PostAnnouncementRequest{
			Title:       "Taraweeh starts tonight",
			Description: utils.ToPtr("After isha"),
			Author:      "secretary",
		})
		require.NoError(t, err)

		res, err := flow.GetAnnouncements(ctx)
		require.NoError(t, err)
		require.Len(t, res.Announcements, 1)
		assert.Equal(t, "secretary", res.Announcements[0].Author)
		assert.False(t, res.Announcements[0].LastUpdated.IsZero())
	})

	t.Run("unknown author", func(t *testing.T) {
		flow, _ := newFlow()
		err := flow.PostAnnouncement(ctx, &dto.PostAnnouncementRequest{Title: "Cake sale", Author: "stranger"})
		assert.True(t, IsAuthorNotFound(err))
		assert.Equal(t, CodeAuthorNotFound, CodeOf(err))
	})

	t.Run("duplicate title", func(t *testing.T) {
		flow, _ := newFlow()
		req := &dto.PostAnnouncementRequest{Title: "Cake sale", Author: "secretary"}
		require.NoError(t, flow.PostAnnouncement(ctx, req))
		assert.True(t, IsConflict(flow.PostAnnouncement(ctx, req)))
	})

	t.Run("edit", func(t *testing.T) {
		flow, durable := newFlow()
		require.NoError(t, flow.PostAnnouncement(ctx, &dto.PostAnnouncementRequest{Title: "Cake sale", Author: "secretary"}))

		err := flow.EditAnnouncement(ctx, &dto.EditAnnouncementRequest{ID: 1, Title: "Cake sale moved", Author: "secretary"})
		require.NoError(t, err)
		assert.Equal(t, "Cake sale moved", durable.announcements[0].Title)

		err = flow.EditAnnouncement(ctx, &dto.EditAnnouncementRequest{ID: 7, Title: "Cake sale moved", Author: "secretary"})
		assert.True(t, IsNotFound(err))
	})

	t.Run("validation", func(t *testing.T) {
		flow, durable := newFlow()
		assert.ErrorIs(t, flow.PostAnnouncement(ctx, nil), ErrNilRequest)
		assert.ErrorIs(t, flow.PostAnnouncement(ctx, &dto.PostAnnouncementRequest{Title: "Hi", Author: "secretary"}), ErrTitleTooShort)
		assert.ErrorIs(t, flow.EditAnnouncement(ctx, &dto.EditAnnouncementRequest{Title: "Cake sale", Author: "secretary"}), repository.ErrZeroID)
		assert.Empty(t, durable.announcements)
	})

	t.Run("empty listing is not found", func(t *testing.T) {
		flow, _ := newFlow()
		_, err := flow.GetAnnouncements(ctx)
		assert.True(t, IsNotFound(err))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeInvalidRequest, CodeOf(repository.ErrDigestMismatch))
	assert.Equal(t, CodeAuthorNotFound, CodeOf(repository.ErrAuthorNotFound))
	assert.Equal(t, CodeNotFound, CodeOf(repository.ErrNotFound))
	assert.Equal(t, CodeInternal, CodeOf(assert.AnError))
	assert.Equal(t, CodeConflict, CodeOf(NewBusinessError(CodeConflict, "taken", nil)))
	assert.Nil(t, wrap("ignored", nil))

	wrapped := wrap("outer", NewBusinessError(CodeNotFound, "inner", repository.ErrNotFound))
	var be *BusinessError
	require.ErrorAs(t, wrapped, &be)
	assert.Equal(t, "inner", be.Message)
}
