package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/cache"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayNameFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Ana Maria", displayNameFor("  Ana   Maria "))
	assert.Equal(t, models.DefaultHostDisplayName, displayNameFor(""))
	assert.Equal(t, models.DefaultHostDisplayName, displayNameFor("A"))
	assert.Len(t, []rune(displayNameFor(strings.Repeat("ț", 80))), 60)
}

func TestHostProfileService_UpdateMine(t *testing.T) {
	t.Parallel()
	st := newStack(t)
	ctx := context.Background()
	host := st.host(t)

	name := "Casa Bunicii"
	bio := "  Gazde din 1998.  "
	langs := []string{"RO", "en", "ro", " "}
	bucket := models.ResponseWithinHour
	p, err := st.hosts.UpdateMine(ctx, host.UserID, HostProfilePatch{
		DisplayName: &name, Bio: &bio, Languages: &langs, ResponseRate: intPtr(95), ResponseTimeBucket: &bucket,
	})
	require.NoError(t, err)
	assert.Equal(t, "Casa Bunicii", p.DisplayName)
	assert.Equal(t, "Gazde din 1998.", p.Bio)
	assert.Equal(t, []string{"ro", "en"}, []string(p.Languages))
	assert.Equal(t, 95, p.ResponseRate)
	assert.Equal(t, models.ResponseWithinHour, p.ResponseTimeBucket)

	short := "X"
	badURL := "javascript:alert(1)"
	badBucket := models.ResponseTimeBucket("never")
	many := strings.Split("ro,en,fr,de,it,es,hu,uk,pl,cs,sk", ",")
	for name, patch := range map[string]HostProfilePatch{
		"short name":   {DisplayName: &short},
		"avatar":       {AvatarURL: &badURL},
		"rate":         {ResponseRate: intPtr(101)},
		"bucket":       {ResponseTimeBucket: &badBucket},
		"languages":    {Languages: &many},
		"negative pct": {ResponseRate: intPtr(-1)},
	} {
		_, err := st.hosts.UpdateMine(ctx, host.UserID, patch)
		assert.True(t, models.HasCode(err, models.CodeValidation), "%s: %v", name, err)
	}
}

func TestHostProfileService_PublicIsCachedAndInvalidated(t *testing.T) {
	mr := useMiniredis(t)
	st := newStack(t)
	ctx := context.Background()
	host := st.host(t)

	_, err := st.hosts.Ensure(ctx, host.UserID)
	require.NoError(t, err)
	require.NoError(t, st.db.Model(&models.HostProfile{}).
		Where("user_id = ?", host.UserID).
		Update("hosting_since", time.Now().UTC().AddDate(0, 0, -800)).Error)

	pub, err := st.hosts.Public(ctx, host.UserID)
	require.NoError(t, err)
	assert.InDelta(t, 26, pub.MonthsHosting, 1)
	assert.NotNil(t, pub.Languages)
	assert.True(t, mr.Exists(cache.HostProfileKey(host.UserID)))

	name := "Nume Nou"
	_, err = st.hosts.UpdateMine(ctx, host.UserID, HostProfilePatch{DisplayName: &name})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.HostProfileKey(host.UserID)))

	pub, err = st.hosts.Public(ctx, host.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Nume Nou", pub.DisplayName)

	_, err = st.hosts.Public(ctx, 5000)
	assertAppErrorCode(t, err, models.CodeNotFound)
}
