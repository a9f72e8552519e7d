package service

import (
	"context"
	"strings"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/activity"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	defaultActivityLimit = 30
	minActivityLimit     = 10
	maxActivityLimit     = 100
)

var activityRanges = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// ActivityQuery are the host feed query parameters.
type ActivityQuery struct {
	Range string
	Type  string
	Q     string
	Page  int
	Limit int
}

// ActivityPage is one page of the host feed plus the KPI rollup over the whole filtered window.
type ActivityPage struct {
	Items []models.HostActivityEvent `json:"items"`
	Total int64                      `json:"total"`
	Page  int                        `json:"page"`
	Limit int                        `json:"limit"`
	KPI   models.ActivityKPI         `json:"kpi"`
}

type ActivityService struct {
	repo     repository.ActivityRepository
	listings repository.ListingRepository
	sink     activity.Sink
	now      func() time.Time
}

func NewActivityService(repo repository.ActivityRepository, listings repository.ListingRepository, sink activity.Sink) *ActivityService {
	if sink == nil {
		sink = activity.Discard{}
	}
	return &ActivityService{repo: repo, listings: listings, sink: sink, now: time.Now}
}

func (q ActivityQuery) filter(hostID uint, now time.Time) (repository.ActivityFilter, int, int, error) {
	rng := q.Range
	if rng == "" {
		rng = "7d"
	}
	window, ok := activityRanges[rng]
	if !ok {
		return repository.ActivityFilter{}, 0, 0, models.NewValidationError("range must be one of 24h, 7d, 30d")
	}

	var typ models.ActivityType
	if t := strings.TrimSpace(q.Type); t != "" && t != "all" {
		typ = models.ActivityType(t)
		if !typ.Valid() {
			return repository.ActivityFilter{}, 0, 0, models.NewValidationError("unknown activity type")
		}
	}

	limit := q.Limit
	switch {
	case limit <= 0:
		limit = defaultActivityLimit
	case limit < minActivityLimit:
		limit = minActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	return repository.ActivityFilter{
		HostID: hostID,
		Since:  now.Add(-window),
		Type:   typ,
		Query:  strings.TrimSpace(q.Q),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, page, limit, nil
}

// Query returns the host's feed. Items, total and KPI are read concurrently over the same filter.
func (s *ActivityService) Query(ctx context.Context, hostID uint, q ActivityQuery) (*ActivityPage, error) {
	f, page, limit, err := q.filter(hostID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	out := &ActivityPage{Page: page, Limit: limit}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.repo.Query(gctx, f)
		out.Items = items
		return err
	})
	g.Go(func() error {
		total, err := s.repo.Count(gctx, f)
		out.Total = total
		return err
	})
	g.Go(func() error {
		kpi, err := s.repo.KPI(gctx, f)
		out.KPI = kpi
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []models.HostActivityEvent{}
	}
	return out, nil
}

// MaxUserAgentLen caps the user agent kept on guest events.
const MaxUserAgentLen = 120

// MaxImpressionBatch caps how many listings one impression call may name.
const MaxImpressionBatch = 50

// guestMeta is the only metadata stored on guest events. Clients cannot add to it.
func guestMeta(userAgent string) map[string]any {
	ua := strings.TrimSpace(userAgent)
	if ua == "" {
		return nil
	}
	if r := []rune(ua); len(r) > MaxUserAgentLen {
		ua = string(r[:MaxUserAgentLen])
	}
	return map[string]any{"ua": ua}
}

// TrackListingEvent records a guest interaction with a live listing.
func (s *ActivityService) TrackListingEvent(ctx context.Context, listingID uint, typ models.ActivityType, userAgent string) error {
	if !typ.Valid() || !typ.GuestTrackable() {
		return models.NewValidationError("event type cannot be tracked")
	}
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if l.Status != models.StatusLive {
		return models.NewNotFoundError("Listing", listingID)
	}
	s.recordGuest(ctx, l, typ, guestMeta(userAgent))
	return nil
}

// TrackImpressions records one impression per distinct live listing in ids.
// Unknown or non-live listings are skipped. It returns how many were recorded.
func (s *ActivityService) TrackImpressions(ctx context.Context, ids []uint, userAgent string) (int, error) {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) > MaxImpressionBatch {
		unique = unique[:MaxImpressionBatch]
	}

	meta := guestMeta(userAgent)
	recorded := 0
	for _, id := range unique {
		l, err := s.listings.GetByID(ctx, id)
		if err != nil {
			if models.HasCode(err, models.CodeNotFound) {
				continue
			}
			return recorded, err
		}
		if l.Status != models.StatusLive {
			continue
		}
		s.recordGuest(ctx, l, models.ActivityImpression, meta)
		recorded++
	}
	return recorded, nil
}

func (s *ActivityService) recordGuest(ctx context.Context, l *models.Listing, typ models.ActivityType, meta map[string]any) {
	id := l.ID
	s.sink.Record(ctx, activity.Event{
		HostID:        l.HostID,
		Type:          typ,
		Actor:         models.ActorGuest,
		ListingID:     &id,
		PropertyTitle: l.Title,
		Meta:          meta,
	})
}
