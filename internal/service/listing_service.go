package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RubenLpc/BucovinaStay-backend/internal/activity"
	"github.com/RubenLpc/BucovinaStay-backend/internal/cache"
	"github.com/RubenLpc/BucovinaStay-backend/internal/embedding"
	"github.com/RubenLpc/BucovinaStay-backend/internal/lifecycle"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
	"github.com/RubenLpc/BucovinaStay-backend/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
)

// ListingInput is the body of POST /host/listings.
type ListingInput struct {
	Title       string             `json:"title"`
	Subtitle    string             `json:"subtitle"`
	Description string             `json:"description"`
	Type        models.ListingType `json:"type"`
	City        string             `json:"city"`
	Locality    string             `json:"locality"`
	County      string             `json:"county"`
	Region      string             `json:"region"`
	Price       int64              `json:"price_per_night"`
	Currency    string             `json:"currency"`
	Capacity    int                `json:"capacity"`
	Facilities  []string           `json:"facilities"`
}

// ListingPatch is the body of PATCH /host/listings/:id. Status and moderation stamps are not patchable.
type ListingPatch struct {
	Title       *string             `json:"title"`
	Subtitle    *string             `json:"subtitle"`
	Description *string             `json:"description"`
	Type        *models.ListingType `json:"type"`
	City        *string             `json:"city"`
	Locality    *string             `json:"locality"`
	Price       *int64              `json:"price_per_night"`
	Capacity    *int                `json:"capacity"`
	Facilities  *[]string           `json:"facilities"`
}

// embeddedFields are the columns whose change on a live listing warrants re-embedding.
var embeddedFields = []string{"title", "subtitle", "description", "city", "locality", "type", "facilities", "capacity"}

// ListingDeps wires a ListingService.
type ListingDeps struct {
	Listings repository.ListingRepository
	Settings SettingsSource
	Hosts    *HostProfileService
	Stats    *StatsService
	Sink     activity.Sink
	// Embedder is optional; nil disables re-embedding.
	Embedder embedding.Enqueuer
	// PolicyStaleness bounds the age of the policy used by a transition.
	PolicyStaleness time.Duration
}

type ListingService struct {
	listings  repository.ListingRepository
	settings  SettingsSource
	hosts     *HostProfileService
	stats     *StatsService
	sink      activity.Sink
	embedder  embedding.Enqueuer
	staleness time.Duration
	now       func() time.Time
}

func NewListingService(d ListingDeps) *ListingService {
	sink := d.Sink
	if sink == nil {
		sink = activity.Discard{}
	}
	return &ListingService{
		listings:  d.Listings,
		settings:  d.Settings,
		hosts:     d.Hosts,
		stats:     d.Stats,
		sink:      sink,
		embedder:  d.Embedder,
		staleness: d.PolicyStaleness,
		now:       time.Now,
	}
}

func canManage(l *models.Listing, actor lifecycle.Actor) bool {
	return l.IsOwnedBy(actor.UserID) || actor.Admin
}

func actorKind(l *models.Listing, actor lifecycle.Actor) models.ActivityActor {
	if l.IsOwnedBy(actor.UserID) {
		return models.ActorHost
	}
	return models.ActorSystem
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func cleanFacilities(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, f := range in {
		f = strings.TrimSpace(f)
		if !models.ValidFacility(f) {
			return nil, models.NewValidationError(fmt.Sprintf("unknown facility %q", f))
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (in *ListingInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.Description = strings.TrimSpace(in.Description)
	in.City = strings.TrimSpace(in.City)
	in.Locality = strings.TrimSpace(in.Locality)
	in.County = strings.TrimSpace(in.County)
	in.Region = strings.TrimSpace(in.Region)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))

	switch {
	case in.Title == "":
		return models.NewValidationError("title is required")
	case runeLen(in.Title) > models.MaxTitleLen:
		return models.NewValidationError("title too long (max 90 characters)")
	case runeLen(in.Subtitle) > models.MaxSubtitleLen:
		return models.NewValidationError("subtitle too long (max 60 characters)")
	case runeLen(in.Description) > models.MaxDescriptionLen:
		return models.NewValidationError("description too long (max 4000 characters)")
	case !in.Type.Valid():
		return models.NewValidationError("invalid listing type")
	case in.City == "":
		return models.NewValidationError("city is required")
	case in.Price <= 0:
		return models.NewValidationError("price_per_night must be positive")
	case in.Capacity < 1:
		return models.NewValidationError("capacity must be at least 1")
	}
	if in.Currency == "" {
		in.Currency = "RON"
	}
	if err := validation.ValidateCurrency(in.Currency); err != nil {
		return models.NewValidationError(err.Error())
	}
	if in.County == "" {
		in.County = "Suceava"
	}
	if in.Region == "" {
		in.Region = "Bucovina"
	}
	facilities, err := cleanFacilities(in.Facilities)
	if err != nil {
		return err
	}
	in.Facilities = facilities
	return nil
}

// Create adds a draft listing for hostID.
func (s *ListingService) Create(ctx context.Context, hostID uint, in ListingInput) (*models.Listing, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	settings, err := s.settings.Current(ctx, s.staleness)
	if err != nil {
		return nil, err
	}
	if limit := settings.Limits.MaxListingsPerHost; limit > 0 {
		n, err := s.listings.CountByHost(ctx, hostID)
		if err != nil {
			return nil, err
		}
		if n >= int64(limit) {
			return nil, models.NewValidationError(fmt.Sprintf("listing limit reached (max %d per host)", limit))
		}
	}
	if _, err := s.hosts.Ensure(ctx, hostID); err != nil {
		return nil, err
	}

	l := &models.Listing{
		HostID:      hostID,
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Description: in.Description,
		Type:        in.Type,
		City:        in.City,
		Locality:    in.Locality,
		County:      in.County,
		Region:      in.Region,
		Price:       in.Price,
		Currency:    in.Currency,
		Capacity:    in.Capacity,
		Facilities:  datatypes.JSONSlice[string](in.Facilities),
		Status:      models.StatusDraft,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	s.record(ctx, l, models.ActivityPropertyCreated, models.ActorHost, nil)
	return l, nil
}

// fields validates p and returns the columns to write plus the names of the changed fields.
func (p ListingPatch) fields(cur *models.Listing) (map[string]any, []string, error) {
	fields := map[string]any{}
	var changed []string
	set := func(col string, v any, differs bool) {
		if differs {
			fields[col] = v
			changed = append(changed, col)
		}
	}

	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		if v == "" || runeLen(v) > models.MaxTitleLen {
			return nil, nil, models.NewValidationError("title must be between 1 and 90 characters")
		}
		set("title", v, v != cur.Title)
	}
	if p.Subtitle != nil {
		v := strings.TrimSpace(*p.Subtitle)
		if runeLen(v) > models.MaxSubtitleLen {
			return nil, nil, models.NewValidationError("subtitle too long (max 60 characters)")
		}
		set("subtitle", v, v != cur.Subtitle)
	}
	if p.Description != nil {
		v := strings.TrimSpace(*p.Description)
		if runeLen(v) > models.MaxDescriptionLen {
			return nil, nil, models.NewValidationError("description too long (max 4000 characters)")
		}
		set("description", v, v != cur.Description)
	}
	if p.Type != nil {
		if !p.Type.Valid() {
			return nil, nil, models.NewValidationError("invalid listing type")
		}
		set("type", *p.Type, *p.Type != cur.Type)
	}
	if p.City != nil {
		v := strings.TrimSpace(*p.City)
		if v == "" {
			return nil, nil, models.NewValidationError("city is required")
		}
		set("city", v, v != cur.City)
	}
	if p.Locality != nil {
		v := strings.TrimSpace(*p.Locality)
		set("locality", v, v != cur.Locality)
	}
	if p.Price != nil {
		if *p.Price <= 0 {
			return nil, nil, models.NewValidationError("price_per_night must be positive")
		}
		set("price_per_night", *p.Price, *p.Price != cur.Price)
	}
	if p.Capacity != nil {
		if *p.Capacity < 1 {
			return nil, nil, models.NewValidationError("capacity must be at least 1")
		}
		set("capacity", *p.Capacity, *p.Capacity != cur.Capacity)
	}
	if p.Facilities != nil {
		v, err := cleanFacilities(*p.Facilities)
		if err != nil {
			return nil, nil, err
		}
		set("facilities", datatypes.JSONSlice[string](v), !slices.Equal(v, []string(cur.Facilities)))
	}
	return fields, changed, nil
}

// Update patches listing content on behalf of its owner or an admin.
func (s *ListingService) Update(ctx context.Context, actor lifecycle.Actor, id uint, patch ListingPatch) (*models.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(l, actor) {
		return nil, models.NewForbiddenError("only the owning host can edit this listing")
	}
	fields, changed, err := patch.fields(l)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return l, nil
	}
	if err := s.listings.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	cache.InvalidateListing(ctx, id)

	updated, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.record(ctx, updated, models.ActivityPropertyUpdated, actorKind(updated, actor), map[string]any{"fields": changed})

	if updated.Status == models.StatusLive && slices.ContainsFunc(changed, func(f string) bool {
		return slices.Contains(embeddedFields, f)
	}) {
		s.reembed(ctx, updated)
	}
	return updated, nil
}

// Delete removes the listing and its reviews, then refreshes the host's stats.
func (s *ListingService) Delete(ctx context.Context, actor lifecycle.Actor, id uint) error {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(l, actor) {
		return models.NewForbiddenError("only the owning host can delete this listing")
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateListing(ctx, id)
	s.record(ctx, l, models.ActivityPropertyDeleted, actorKind(l, actor), nil)
	s.stats.refreshHostBestEffort(ctx, l.HostID)
	return nil
}

// Get returns a listing. Non-live listings are visible only to their owner and admins.
func (s *ListingService) Get(ctx context.Context, viewer lifecycle.Actor, id uint) (*models.Listing, error) {
	var l models.Listing
	err := cache.Aside(ctx, cache.ListingKey(id), &l, cache.ListingTTL, func() error {
		found, err := s.listings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		l = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if l.Status != models.StatusLive && !canManage(&l, viewer) {
		return nil, models.NewNotFoundError("Listing", id)
	}
	return &l, nil
}

func (s *ListingService) ListPublic(ctx context.Context, f repository.ListingFilter) ([]models.Listing, int64, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, 0, models.NewValidationError("invalid listing type")
	}
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return nil, 0, models.NewValidationError("min_price cannot exceed max_price")
	}
	return s.listings.ListPublic(ctx, f)
}

func (s *ListingService) ListMine(ctx context.Context, hostID uint) ([]models.Listing, error) {
	return s.listings.ListByHost(ctx, hostID)
}

// AdminList is the moderation queue. An empty status lists everything.
func (s *ListingService) AdminList(ctx context.Context, status models.ListingStatus, limit, offset int) ([]models.Listing, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, models.NewValidationError("invalid status")
	}
	return s.listings.ListByStatus(ctx, status, limit, offset)
}

func (s *ListingService) Submit(ctx context.Context, actor lifecycle.Actor, id uint) (*models.Listing, error) {
	return s.transition(ctx, id, lifecycle.Request{Action: lifecycle.ActionSubmit, Actor: actor})
}

func (s *ListingService) TogglePause(ctx context.Context, actor lifecycle.Actor, id uint) (*models.Listing, error) {
	return s.transition(ctx, id, lifecycle.Request{Action: lifecycle.ActionToggle, Actor: actor})
}

func (s *ListingService) Approve(ctx context.Context, admin lifecycle.Actor, id uint) (*models.Listing, error) {
	return s.transition(ctx, id, lifecycle.Request{Action: lifecycle.ActionApprove, Actor: admin})
}

func (s *ListingService) Reject(ctx context.Context, admin lifecycle.Actor, id uint, reason string) (*models.Listing, error) {
	return s.transition(ctx, id, lifecycle.Request{Action: lifecycle.ActionReject, Actor: admin, Reason: reason})
}

func (s *ListingService) Unpublish(ctx context.Context, admin lifecycle.Actor, id uint) (*models.Listing, error) {
	return s.transition(ctx, id, lifecycle.Request{Action: lifecycle.ActionUnpublish, Actor: admin})
}

// SetStatus moves a listing to status through the matching admin transition.
func (s *ListingService) SetStatus(ctx context.Context, admin lifecycle.Actor, id uint, status models.ListingStatus, reason string) (*models.Listing, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("invalid status")
	}
	action, ok := lifecycle.TargetFor(status)
	if !ok {
		l, err := s.listings.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, models.NewInvalidTransitionError(l.Status, status)
	}
	return s.transition(ctx, id, lifecycle.Request{Action: action, Actor: admin, Reason: reason})
}

// transition loads the listing and a fresh policy snapshot, validates the request,
// and writes the diff with a status-guarded UPDATE. Side effects run only after that write.
func (s *ListingService) transition(ctx context.Context, id uint, req lifecycle.Request) (_ *models.Listing, err error) {
	ctx, span := observability.StartSpan(ctx, "lifecycle."+string(req.Action),
		observability.ListingID(id),
		observability.UserID(req.Actor.UserID),
		attribute.Bool("actor.admin", req.Actor.Admin),
	)
	action := req.Action
	defer func() {
		observability.ListingTransitions.WithLabelValues(string(action), observability.Outcome(err)).Inc()
		span.End(err)
	}()

	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	policy, err := s.settings.Snapshot(ctx, s.staleness)
	if err != nil {
		return nil, err
	}

	diff, err := lifecycle.Apply(*l, req, policy, s.now().UTC())
	if err != nil {
		return nil, err
	}
	action = diff.Action
	span.SetAttributes(observability.HostID(l.HostID), observability.AttrAction.String(string(action)))

	ok, err := s.listings.ApplyTransition(ctx, id, diff.From, diff.Columns())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewInvalidTransitionError(diff.From, diff.To)
	}
	cache.InvalidateListing(ctx, id)

	updated := diff.ApplyTo(*l)
	slog.InfoContext(ctx, "listing transition",
		"listing_id", id, "action", string(diff.Action), "from", string(diff.From), "to", string(diff.To))
	s.afterTransition(ctx, &updated, diff, req.Actor)
	return &updated, nil
}

func (s *ListingService) afterTransition(ctx context.Context, l *models.Listing, diff lifecycle.Diff, actor lifecycle.Actor) {
	meta := map[string]any{"from": string(diff.From), "to": string(diff.To)}
	if diff.ReasonSet {
		meta["reason"] = diff.Reason
	}
	s.record(ctx, l, diff.ActivityType(), actorKind(l, actor), meta)

	if diff.To == models.StatusLive {
		s.reembed(ctx, l)
		s.stats.refreshHostBestEffort(ctx, l.HostID)
	}
}

// reembed queues an embedding job when the listing text changed since the last one.
func (s *ListingService) reembed(ctx context.Context, l *models.Listing) {
	if s.embedder == nil {
		return
	}
	text, fp, changed := embedding.NeedsReembed(*l)
	if !changed {
		return
	}
	if err := s.embedder.Enqueue(ctx, l.ID, text, fp); err != nil {
		slog.WarnContext(ctx, "re-embed enqueue failed", "listing_id", l.ID, "err", err)
		observability.SideEffectFailed("reembed")
		return
	}
	if err := s.listings.SetEmbeddingHash(ctx, l.ID, fp); err != nil {
		slog.WarnContext(ctx, "embedding hash update failed", "listing_id", l.ID, "err", err)
		observability.SideEffectFailed("reembed_hash")
		return
	}
	l.EmbeddingHash = fp
}

func (s *ListingService) record(ctx context.Context, l *models.Listing, typ models.ActivityType, actor models.ActivityActor, meta map[string]any) {
	id := l.ID
	s.sink.Record(ctx, activity.Event{
		HostID:        l.HostID,
		Type:          typ,
		Actor:         actor,
		ListingID:     &id,
		PropertyTitle: l.Title,
		Meta:          meta,
	})
}
