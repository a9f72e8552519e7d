package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 365
	listingStatsDays     = 30
	adminOverviewDays    = 7
)

// clickActions are the click_* types reported per action, without the prefix.
var clickActions = []models.ActivityType{
	models.ActivityClickPhone, models.ActivityClickWhatsApp, models.ActivityClickSMS,
	models.ActivityClickShare, models.ActivityClickGallery,
}

// DayPoint is one day of the analytics timeline.
type DayPoint struct {
	Date        string `json:"date"`
	Impressions int64  `json:"impressions"`
	Clicks      int64  `json:"clicks"`
}

// AnalyticsSummary rolls guest impressions and clicks up over a window of days.
// CTR is clicks per impression in percent, rounded to one decimal.
type AnalyticsSummary struct {
	RangeDays    int              `json:"range_days"`
	Impressions  int64            `json:"impressions"`
	Clicks       int64            `json:"clicks"`
	CTR          float64          `json:"ctr"`
	ClickActions map[string]int64 `json:"click_actions"`
	Timeline     []DayPoint       `json:"timeline"`
}

// ListingAnalytics is the 30-day reach of one listing.
type ListingAnalytics struct {
	Views30d  int64 `json:"views_30d"`
	Clicks30d int64 `json:"clicks_30d"`
}

// AdminOverview is the admin dashboard: platform totals plus the last week of guest analytics.
type AdminOverview struct {
	Counts    repository.PlatformCounts `json:"counts"`
	Analytics AnalyticsSummary          `json:"analytics"`
}

type AnalyticsService struct {
	activity repository.ActivityRepository
	overview repository.OverviewRepository
	listings repository.ListingRepository
	now      func() time.Time
}

func NewAnalyticsService(activity repository.ActivityRepository, overview repository.OverviewRepository, listings repository.ListingRepository) *AnalyticsService {
	return &AnalyticsService{activity: activity, overview: overview, listings: listings, now: time.Now}
}

// ParseRangeDays reads a range such as "30d". Empty means 30 days.
func ParseRangeDays(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultAnalyticsDays, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || !strings.HasSuffix(s, "d") || n < 1 || n > maxAnalyticsDays {
		return 0, models.NewValidationError("range must look like 30d, between 1d and 365d")
	}
	return n, nil
}

// windowStart is midnight UTC of the first day in a window of days ending today.
func windowStart(now time.Time, days int) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
}

func ctrPercent(clicks, impressions int64) float64 {
	if impressions == 0 {
		return 0
	}
	return math.Round(float64(clicks)/float64(impressions)*1000) / 10
}

// summarize folds per-day counts into a summary with a gap-free timeline.
func summarize(rows []repository.DailyCount, start time.Time, days int) AnalyticsSummary {
	out := AnalyticsSummary{
		RangeDays:    days,
		ClickActions: make(map[string]int64, len(clickActions)),
		Timeline:     make([]DayPoint, days),
	}
	for _, t := range clickActions {
		out.ClickActions[strings.TrimPrefix(string(t), "click_")] = 0
	}
	index := make(map[string]int, days)
	for i := range out.Timeline {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		out.Timeline[i].Date = day
		index[day] = i
	}

	for _, row := range rows {
		i, inWindow := index[row.Day]
		switch {
		case row.Type == models.ActivityImpression:
			out.Impressions += row.Total
			if inWindow {
				out.Timeline[i].Impressions += row.Total
			}
		case strings.HasPrefix(string(row.Type), "click_"):
			out.Clicks += row.Total
			out.ClickActions[strings.TrimPrefix(string(row.Type), "click_")] += row.Total
			if inWindow {
				out.Timeline[i].Clicks += row.Total
			}
		}
	}
	out.CTR = ctrPercent(out.Clicks, out.Impressions)
	return out
}

// HostOverview summarizes the guest analytics of hostID's listings over rangeParam.
func (s *AnalyticsService) HostOverview(ctx context.Context, hostID uint, rangeParam string) (*AnalyticsSummary, error) {
	days, err := ParseRangeDays(rangeParam)
	if err != nil {
		return nil, err
	}
	start := windowStart(s.now(), days)
	rows, err := s.activity.DailyCounts(ctx, repository.AnalyticsFilter{HostID: hostID, Since: start})
	if err != nil {
		return nil, err
	}
	out := summarize(rows, start, days)
	return &out, nil
}

// ListingStats returns the 30-day views and clicks of every listing hostID owns.
func (s *AnalyticsService) ListingStats(ctx context.Context, hostID uint) (map[uint]ListingAnalytics, error) {
	var (
		owned  []models.Listing
		counts []repository.ListingCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owned, err = s.listings.ListByHost(gctx, hostID)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.activity.ListingCounts(gctx, repository.AnalyticsFilter{
			HostID: hostID,
			Since:  windowStart(s.now(), listingStatsDays),
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[uint]ListingAnalytics, len(owned))
	for _, l := range owned {
		out[l.ID] = ListingAnalytics{}
	}
	for _, c := range counts {
		stats, ok := out[c.ListingID]
		if !ok {
			continue
		}
		if c.Type == models.ActivityImpression {
			stats.Views30d += c.Total
		} else {
			stats.Clicks30d += c.Total
		}
		out[c.ListingID] = stats
	}
	return out, nil
}

// AdminOverview reads the platform totals and the last week of analytics concurrently.
func (s *AnalyticsService) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	start := windowStart(s.now(), adminOverviewDays)
	var (
		out  AdminOverview
		rows []repository.DailyCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Counts, err = s.overview.Counts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.activity.DailyCounts(gctx, repository.AnalyticsFilter{Since: start})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.Analytics = summarize(rows, start, adminOverviewDays)
	return &out, nil
}
