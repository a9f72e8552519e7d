// Package seed provides helpers to create demo data for the marketplace
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db    *gorm.DB
	opts  Options
	fx    *Fixtures
	fake  *gofakeit.Faker
	now   time.Time
	hash  string
	email int
}

// NewFactory creates a Factory bound to db. A zero opts.RandomSeed seeds from the clock.
func NewFactory(db *gorm.DB, fx *Fixtures, opts Options) (*Factory, error) {
	seed := opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Hash once: bcrypt per user dominates seeding time otherwise.
	hash := DefaultPassword
	if !opts.SkipBcrypt {
		raw, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password: %w", err)
		}
		hash = string(raw)
	}

	return &Factory{
		db:   db,
		opts: opts,
		fx:   fx,
		fake: gofakeit.New(seed),
		now:  time.Now().UTC(),
		hash: hash,
	}, nil
}

func (f *Factory) pick(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[f.fake.Number(0, len(items)-1)]
}

// daysAgo returns a random instant within the last maxDays days.
func (f *Factory) daysAgo(maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 1
	}
	back := time.Duration(f.fake.Number(0, maxDays*24*60-1)) * time.Minute
	return f.now.Add(-back)
}

// CreateUser persists a user with the given role. Optional overrides run before saving.
func (f *Factory) CreateUser(ctx context.Context, role models.Role, overrides ...func(*models.User)) (*models.User, error) {
	f.email++
	first, last := f.fake.FirstName(), f.fake.LastName()
	user := &models.User{
		Name:     first + " " + last,
		Email:    fmt.Sprintf("%s.%s.%d@bucovinastay.test", strings.ToLower(first), strings.ToLower(last), f.email),
		Password: f.hash,
		Phone:    f.fake.Phone(),
		Role:     role,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create %s user: %w", role, err)
	}
	return user, nil
}

// CreateHostProfile persists the host profile of user with fixture bio and languages.
func (f *Factory) CreateHostProfile(ctx context.Context, user *models.User) (*models.HostProfile, error) {
	buckets := []models.ResponseTimeBucket{
		models.ResponseWithinHour, models.ResponseWithinDay, models.ResponseFewDays, models.ResponseUnknown,
	}
	langs := []string{"ro"}
	if extra := f.pick(f.fx.Languages); extra != "" && extra != "ro" {
		langs = append(langs, extra)
	}

	p := &models.HostProfile{
		UserID:             user.ID,
		DisplayName:        user.Name,
		AvatarURL:          fmt.Sprintf("https://i.pravatar.cc/150?u=%d", user.ID),
		Bio:                f.pick(f.fx.HostBios),
		Verified:           f.fake.Bool(),
		HostingSince:       f.daysAgo(f.opts.maxDays() * 12),
		ResponseRate:       f.fake.Number(60, 100),
		ResponseTimeBucket: buckets[f.fake.Number(0, len(buckets)-1)],
		Languages:          langs,
	}
	if err := f.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("create host profile: %w", err)
	}
	return p, nil
}

// CreateListing persists a listing for host in the given status with timestamps that
// match it, so seeded data satisfies the same invariants as moderated data.
func (f *Factory) CreateListing(ctx context.Context, host *models.User, status models.ListingStatus) (*models.Listing, error) {
	types := f.fx.ListingTypes()
	typ := types[f.fake.Number(0, len(types)-1)]
	loc := f.fx.Localities[f.fake.Number(0, len(f.fx.Localities)-1)]

	facilities := make([]string, 0, 4)
	for _, fac := range []string{"wifi", "parking", "breakfast", "petFriendly", "spa", "kitchen", "ac", "sauna", "fireplace"} {
		if f.fake.Number(0, 2) == 0 {
			facilities = append(facilities, fac)
		}
	}

	l := &models.Listing{
		HostID:      host.ID,
		Title:       title(f.pick(f.fx.ListingNames[typ]), loc.Locality),
		Subtitle:    f.pick(f.fx.Subtitles),
		Description: f.pick(f.fx.Descriptions),
		Type:        typ,
		City:        loc.City,
		Locality:    loc.Locality,
		County:      "Suceava",
		Region:      "Bucovina",
		Price:       int64(f.fake.Number(15, 90) * 10),
		Currency:    "RON",
		Capacity:    f.fake.Number(2, 12),
		Facilities:  facilities,
		Status:      status,
	}

	submitted := f.daysAgo(f.opts.maxDays())
	decided := submitted.Add(time.Duration(f.fake.Number(1, 48)) * time.Hour)
	if decided.After(f.now) {
		decided = f.now
	}
	switch status {
	case models.StatusPending:
		l.SubmittedAt = &submitted
	case models.StatusLive:
		l.SubmittedAt, l.ApprovedAt = &submitted, &decided
	case models.StatusRejected:
		l.SubmittedAt, l.RejectedAt = &submitted, &decided
		l.RejectionReason = "Fotografiile nu corespund descrierii proprietății."
	case models.StatusPaused:
		l.SubmittedAt, l.PausedAt = &submitted, &decided
	}

	if err := f.db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return l, nil
}

// rating draws a star rating skewed towards good reviews.
func (f *Factory) rating() int {
	switch n := f.fake.Number(1, 100); {
	case n <= 60:
		return 5
	case n <= 85:
		return 4
	case n <= 93:
		return 3
	case n <= 97:
		return 2
	default:
		return 1
	}
}

// CreateReview persists a visible review by author on listing.
func (f *Factory) CreateReview(ctx context.Context, listing *models.Listing, author *models.User) (*models.Review, error) {
	rating := f.rating()
	r := &models.Review{
		ListingID: listing.ID,
		UserID:    author.ID,
		Rating:    rating,
		Comment:   f.pick(f.fx.Reviews[rating]),
		Status:    models.ReviewVisible,
		CreatedAt: f.daysAgo(f.opts.maxDays()),
	}
	if err := f.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return r, nil
}

var guestEvents = []models.ActivityType{
	models.ActivityImpression, models.ActivityImpression, models.ActivityImpression,
	models.ActivityClickGallery, models.ActivityClickPhone, models.ActivityClickWhatsApp,
	models.ActivityClickSMS, models.ActivityClickShare,
}

// CreateActivity writes count guest interaction events for a live listing, spread over
// the configured window, plus the publication event. Rows are inserted directly: the
// recorder would stamp them with the current time.
func (f *Factory) CreateActivity(ctx context.Context, listing *models.Listing, count int) error {
	id := listing.ID
	events := make([]models.HostActivityEvent, 0, count+1)

	published := f.now
	if listing.ApprovedAt != nil {
		published = *listing.ApprovedAt
	}
	events = append(events, models.HostActivityEvent{
		EventID:       uuid.New(),
		HostID:        listing.HostID,
		Type:          models.ActivityPropertyPublished,
		Actor:         models.ActorSystem,
		ListingID:     &id,
		PropertyTitle: listing.Title,
		CreatedAt:     published,
	})

	for i := 0; i < count; i++ {
		typ := guestEvents[f.fake.Number(0, len(guestEvents)-1)]
		events = append(events, models.HostActivityEvent{
			EventID:       uuid.New(),
			HostID:        listing.HostID,
			Type:          typ,
			Actor:         models.ActorGuest,
			ListingID:     &id,
			PropertyTitle: listing.Title,
			Meta:          map[string]any{"source": f.pick([]string{"search", "map", "home", "share"})},
			CreatedAt:     f.daysAgo(f.opts.maxDays()),
		})
	}

	if err := f.db.WithContext(ctx).CreateInBatches(events, f.opts.batchSize()).Error; err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}
