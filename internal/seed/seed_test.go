package seed

import (
	"context"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)

	assert.NotEmpty(t, fx.Localities)
	assert.Len(t, fx.ListingTypes(), 6)
	for rating := 1; rating <= 5; rating++ {
		assert.NotEmpty(t, fx.Reviews[rating], "rating %d", rating)
	}
}

func TestParseFixtures_Rejects(t *testing.T) {
	tests := map[string]string{
		"malformed":      "localities: [",
		"no localities":  "listing_names: {cabana: [x]}",
		"unknown type":   "localities: [{city: Suceava}]\nlisting_names: {castel: [x]}",
		"missing rating": "localities: [{city: Suceava}]\nlisting_names: {cabana: [x]}\nreviews: {5: [ok]}",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFixtures([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Cabana Rarău", title("Cabana {place}", "Rarău"))
	long := title("{place}", string(make([]rune, 200)))
	assert.Len(t, []rune(long), models.MaxTitleLen)
}

func TestSeed_BuildsConsistentMarketplace(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	opts := Options{
		Hosts:             2,
		Guests:            5,
		ListingsPerHost:   4,
		ReviewsPerListing: 3,
		EventsPerListing:  10,
		MaxDays:           7,
		RandomSeed:        42,
		SkipBcrypt:        true,
		AdminEmail:        "admin@bucovinastay.test",
	}
	res, err := Seed(ctx, db, opts)
	require.NoError(t, err)

	assert.Equal(t, 1+5+2, res.Users)
	assert.Equal(t, 8, res.Listings)

	var admins int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)

	// Statuses follow the cycle: 4 of the first 8 listings are live.
	var live []models.Listing
	require.NoError(t, db.Where("status = ?", models.StatusLive).Find(&live).Error)
	require.Len(t, live, 4)
	assert.Equal(t, 4*3, res.Reviews)
	assert.Equal(t, 4*11, res.Events)

	for _, l := range live {
		assert.NotNil(t, l.ApprovedAt)
		assert.Equal(t, 3, l.ReviewsCount, "listing rating is recomputed")
		assert.Greater(t, l.RatingAvg, 0.0)
	}

	var rejected models.Listing
	require.NoError(t, db.Where("status = ?", models.StatusRejected).First(&rejected).Error)
	assert.NotEmpty(t, rejected.RejectionReason)
	assert.NotNil(t, rejected.RejectedAt)

	var profiles []models.HostProfile
	require.NoError(t, db.Find(&profiles).Error)
	require.Len(t, profiles, 2)
	var reviewTotal int
	for _, p := range profiles {
		reviewTotal += p.Stats.ReviewsCount
		assert.NotNil(t, p.Stats.RatingAvg)
		assert.False(t, p.IsSuperHost, "too few reviews for the badge")
	}
	assert.Equal(t, 12, reviewTotal)

	var events int64
	require.NoError(t, db.Model(&models.HostActivityEvent{}).Count(&events).Error)
	assert.Equal(t, int64(res.Events), events)
}

func TestSeed_CleanRemovesPreviousRun(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	opts := Options{Hosts: 1, Guests: 2, ListingsPerHost: 2, ReviewsPerListing: 1, RandomSeed: 7, SkipBcrypt: true}

	_, err := Seed(ctx, db, opts)
	require.NoError(t, err)

	opts.ShouldClean = true
	_, err = Seed(ctx, db, opts)
	require.NoError(t, err)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(3), users)
}
