package repository

import (
	"context"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"gorm.io/gorm"
)

// ActivityFilter selects a host's activity window.
type ActivityFilter struct {
	HostID uint
	Since  time.Time
	// Type is empty for every type.
	Type models.ActivityType
	// Query matches the cached property title or the type, case-insensitive.
	Query  string
	Limit  int
	Offset int
}

// ActivityRepository is the append-only store behind the host activity feed.
type ActivityRepository interface {
	Create(ctx context.Context, event *models.HostActivityEvent) error
	Query(ctx context.Context, f ActivityFilter) ([]models.HostActivityEvent, error)
	Count(ctx context.Context, f ActivityFilter) (int64, error)
	KPI(ctx context.Context, f ActivityFilter) (models.ActivityKPI, error)
	DailyCounts(ctx context.Context, f AnalyticsFilter) ([]DailyCount, error)
	ListingCounts(ctx context.Context, f AnalyticsFilter) ([]ListingCount, error)
}

// AnalyticsFilter selects guest impressions and clicks since a point in time.
// A zero HostID covers every host.
type AnalyticsFilter struct {
	HostID uint
	Since  time.Time
}

// DailyCount is the number of events of one type on one UTC day (YYYY-MM-DD).
type DailyCount struct {
	Day   string
	Type  models.ActivityType
	Total int64
}

// ListingCount is the number of events of one type for one listing.
type ListingCount struct {
	ListingID uint
	Type      models.ActivityType
	Total     int64
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository returns a GORM-backed ActivityRepository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, event *models.HostActivityEvent) error {
	defer observability.TrackQuery("insert", "host_activity_events")()
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// scope applies every filter except pagination.
func (r *activityRepository) scope(ctx context.Context, f ActivityFilter) *gorm.DB {
	q := readDB(r.db).WithContext(ctx).Model(&models.HostActivityEvent{}).Where("host_id = ?", f.HostID)
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		q = q.Where(`(LOWER(property_title) LIKE ? ESCAPE '\' OR LOWER(type) LIKE ? ESCAPE '\')`, p, p)
	}
	return q
}

func (r *activityRepository) Query(ctx context.Context, f ActivityFilter) ([]models.HostActivityEvent, error) {
	defer observability.TrackQuery("select", "host_activity_events")()
	limit, offset := clampPage(f.Limit, f.Offset, 30, 100)
	var events []models.HostActivityEvent
	err := r.scope(ctx, f).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *activityRepository) Count(ctx context.Context, f ActivityFilter) (int64, error) {
	defer observability.TrackQuery("count", "host_activity_events")()
	var n int64
	if err := r.scope(ctx, f).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// KPI counts the filtered window per type and folds the counts into categories.
func (r *activityRepository) KPI(ctx context.Context, f ActivityFilter) (models.ActivityKPI, error) {
	defer observability.TrackQuery("aggregate", "host_activity_events")()
	var rows []struct {
		Type  models.ActivityType
		Total int64
	}
	err := r.scope(ctx, f).
		Select("type, COUNT(*) AS total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return models.ActivityKPI{}, models.NewInternalError(err)
	}
	var kpi models.ActivityKPI
	for _, row := range rows {
		kpi.Add(row.Type, row.Total)
	}
	return kpi, nil
}

// guestScope narrows to impressions and click_* events in the window.
func (r *activityRepository) guestScope(ctx context.Context, f AnalyticsFilter) *gorm.DB {
	q := readDB(r.db).WithContext(ctx).Model(&models.HostActivityEvent{}).
		Where("created_at >= ?", f.Since).
		Where(`(type = ? OR type LIKE ? ESCAPE '\')`, models.ActivityImpression, `click\_%`)
	if f.HostID != 0 {
		q = q.Where("host_id = ?", f.HostID)
	}
	return q
}

// dayExpr renders created_at as a UTC calendar day. Timestamps are written in
// UTC, which sqlite keeps as text.
func dayExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}
	return "substr(created_at, 1, 10)"
}

func (r *activityRepository) DailyCounts(ctx context.Context, f AnalyticsFilter) ([]DailyCount, error) {
	defer observability.TrackQuery("aggregate", "host_activity_events")()
	q := r.guestScope(ctx, f)
	day := dayExpr(q)
	var rows []DailyCount
	err := q.Select(day + " AS day, type, COUNT(*) AS total").
		Group(day + ", type").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *activityRepository) ListingCounts(ctx context.Context, f AnalyticsFilter) ([]ListingCount, error) {
	defer observability.TrackQuery("aggregate", "host_activity_events")()
	var rows []ListingCount
	err := r.guestScope(ctx, f).
		Where("listing_id IS NOT NULL").
		Select("listing_id, type, COUNT(*) AS total").
		Group("listing_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
