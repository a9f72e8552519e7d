package service

import (
	"context"
	"testing"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangeDays(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 30, false},
		{"7d", 7, false},
		{"365d", 365, false},
		{"0d", 0, true},
		{"366d", 0, true},
		{"30", 0, true},
		{"week", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRangeDays(tt.in)
		if tt.wantErr {
			assertAppErrorCode(t, err, models.CodeValidation)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSummarize_FillsGapsAndRoundsCTR(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := []repository.DailyCount{
		{Day: "2026-04-01", Type: models.ActivityImpression, Total: 2},
		{Day: "2026-04-03", Type: models.ActivityImpression, Total: 1},
		{Day: "2026-04-03", Type: models.ActivityClickPhone, Total: 1},
	}

	got := summarize(rows, start, 3)
	assert.Equal(t, int64(3), got.Impressions)
	assert.Equal(t, int64(1), got.Clicks)
	assert.Equal(t, 33.3, got.CTR)
	assert.Equal(t, int64(1), got.ClickActions["contact_phone"])
	assert.Contains(t, got.ClickActions, "gallery")
	assert.Equal(t, []DayPoint{
		{Date: "2026-04-01", Impressions: 2},
		{Date: "2026-04-02"},
		{Date: "2026-04-03", Impressions: 1, Clicks: 1},
	}, got.Timeline)

	assert.Zero(t, summarize(nil, start, 1).CTR, "no impressions means no ctr")
}

func TestAnalyticsService_HostOverviewAndListingStats(t *testing.T) {
	t.Parallel()
	st := newStack(t)
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)
	st.analytics.now = func() time.Time { return now }

	host := st.host(t)
	other := st.host(t)
	cabin := testutil.CreateListing(t, st.db, host.UserID, models.StatusLive)
	villa := testutil.CreateListing(t, st.db, host.UserID, models.StatusPaused)
	foreign := testutil.CreateListing(t, st.db, other.UserID, models.StatusLive)

	repo := repository.NewActivityRepository(st.db)
	add := func(l *models.Listing, typ models.ActivityType, at time.Time) {
		t.Helper()
		id := l.ID
		require.NoError(t, repo.Create(ctx, &models.HostActivityEvent{
			HostID: l.HostID, ListingID: &id, Type: typ, Actor: models.ActorGuest, CreatedAt: at,
		}))
	}
	add(cabin, models.ActivityImpression, now.Add(-time.Hour))
	add(cabin, models.ActivityImpression, now.AddDate(0, 0, -1))
	add(cabin, models.ActivityClickWhatsApp, now.AddDate(0, 0, -1))
	add(cabin, models.ActivityImpression, now.AddDate(0, 0, -20))
	add(cabin, models.ActivityImpression, now.AddDate(0, 0, -45))
	add(cabin, models.ActivityMessageReceived, now.Add(-time.Hour))
	add(foreign, models.ActivityImpression, now.Add(-time.Hour))

	week, err := st.analytics.HostOverview(ctx, host.UserID, "7d")
	require.NoError(t, err)
	assert.Equal(t, 7, week.RangeDays)
	assert.Equal(t, int64(2), week.Impressions)
	assert.Equal(t, int64(1), week.Clicks)
	assert.Equal(t, 50.0, week.CTR)
	assert.Equal(t, int64(1), week.ClickActions["contact_whatsapp"])
	require.Len(t, week.Timeline, 7)
	assert.Equal(t, "2026-06-09", week.Timeline[0].Date)
	assert.Equal(t, DayPoint{Date: "2026-06-15", Impressions: 1}, week.Timeline[6])
	assert.Equal(t, DayPoint{Date: "2026-06-14", Impressions: 1, Clicks: 1}, week.Timeline[5])

	month, err := st.analytics.HostOverview(ctx, host.UserID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), month.Impressions)

	_, err = st.analytics.HostOverview(ctx, host.UserID, "2y")
	assertAppErrorCode(t, err, models.CodeValidation)

	stats, err := st.analytics.ListingStats(ctx, host.UserID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]ListingAnalytics{
		cabin.ID: {Views30d: 3, Clicks30d: 1},
		villa.ID: {},
	}, stats)
}

func TestAnalyticsService_AdminOverview(t *testing.T) {
	t.Parallel()
	st := newStack(t)
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)
	st.analytics.now = func() time.Time { return now }

	host := st.host(t)
	live := testutil.CreateListing(t, st.db, host.UserID, models.StatusLive)
	testutil.CreateListing(t, st.db, host.UserID, models.StatusPending)

	repo := repository.NewActivityRepository(st.db)
	id := live.ID
	for _, typ := range []models.ActivityType{models.ActivityImpression, models.ActivityImpression, models.ActivityClickSMS} {
		require.NoError(t, repo.Create(ctx, &models.HostActivityEvent{
			HostID: host.UserID, ListingID: &id, Type: typ, Actor: models.ActorGuest, CreatedAt: now.Add(-time.Hour),
		}))
	}

	got, err := st.analytics.AdminOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Counts.Users, "the stack admin and the host")
	assert.Equal(t, int64(1), got.Counts.Admins)
	assert.Equal(t, int64(2), got.Counts.Listings)
	assert.Equal(t, int64(1), got.Counts.LiveListings)
	assert.Equal(t, int64(1), got.Counts.PendingListings)
	assert.Equal(t, adminOverviewDays, got.Analytics.RangeDays)
	assert.Equal(t, int64(2), got.Analytics.Impressions)
	assert.Equal(t, int64(1), got.Analytics.ClickActions["contact_sms"])
	assert.Len(t, got.Analytics.Timeline, adminOverviewDays)
}
