package repository

import (
	"context"
	"testing"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_InboxAndStatus(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	host := testutil.CreateUser(t, db, "Gazda", models.RoleHost)
	other := testutil.CreateUser(t, db, "Alta Gazda", models.RoleHost)
	listing := testutil.CreateListing(t, db, host.ID, models.StatusLive)
	otherListing := testutil.CreateListing(t, db, other.ID, models.StatusLive)

	base := time.Now().UTC().Add(-time.Hour)
	var ids []uint
	for i, text := range []string{"Aveti loc in august?", "Se accepta animale?", "Exista parcare privata?"} {
		msg := &models.HostMessage{
			HostID: host.ID, ListingID: listing.ID, GuestName: "Ana", GuestEmail: "ana@example.ro",
			Message: text, Status: models.MessageNew, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, msg))
		ids = append(ids, msg.ID)
	}
	require.NoError(t, repo.Create(ctx, &models.HostMessage{
		HostID: other.ID, ListingID: otherListing.ID, Message: "Mesaj pentru altcineva", Status: models.MessageNew,
	}))

	page, total, err := repo.Inbox(ctx, InboxFilter{HostID: host.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "Exista parcare privata?", page[0].Message, "newest first")
	require.NotNil(t, page[0].Listing)
	assert.Equal(t, listing.Title, page[0].Listing.Title)

	unread, err := repo.UnreadCount(ctx, host.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	require.NoError(t, repo.SetStatus(ctx, ids[0], models.MessageRead))
	read, total, err := repo.Inbox(ctx, InboxFilter{HostID: host.ID, Status: models.MessageRead})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, read, 1)
	assert.Equal(t, ids[0], read[0].ID)

	changed, err := repo.MarkAllRead(ctx, host.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)
	unread, err = repo.UnreadCount(ctx, host.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	otherUnread, err := repo.UnreadCount(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherUnread, "mark all read stays within one inbox")

	assert.True(t, models.HasCode(repo.SetStatus(ctx, 9999, models.MessageRead), models.CodeNotFound))
	_, err = repo.GetByID(ctx, 9999)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}
