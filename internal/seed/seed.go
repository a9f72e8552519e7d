package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	Hosts             int
	Guests            int
	ListingsPerHost   int
	ReviewsPerListing int
	EventsPerListing  int
	MaxDays           int
	BatchSize         int
	RandomSeed        int64
	SkipBcrypt        bool
	ShouldClean       bool
	AdminEmail        string
}

// DefaultOptions is a small but complete demo marketplace.
func DefaultOptions() Options {
	return Options{
		Hosts:             8,
		Guests:            40,
		ListingsPerHost:   3,
		ReviewsPerListing: 12,
		EventsPerListing:  60,
		MaxDays:           30,
		BatchSize:         200,
		AdminEmail:        "admin@bucovinastay.test",
	}
}

func (o Options) maxDays() int {
	if o.MaxDays <= 0 {
		return 30
	}
	return o.MaxDays
}

func (o Options) batchSize() int {
	if o.BatchSize <= 0 {
		return 200
	}
	return o.BatchSize
}

// Result counts what a seeding run created.
type Result struct {
	Users    int
	Listings int
	Reviews  int
	Events   int
}

// statusCycle spreads listings over every moderation state, mostly live.
var statusCycle = []models.ListingStatus{
	models.StatusLive, models.StatusLive, models.StatusPending, models.StatusLive,
	models.StatusDraft, models.StatusLive, models.StatusRejected, models.StatusPaused,
}

// Seed populates the database with demo data and then recomputes every derived
// rating, host stat and SuperHost badge the same way the API does.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	var res Result

	fx, err := LoadFixtures()
	if err != nil {
		return res, err
	}
	f, err := NewFactory(db, fx, opts)
	if err != nil {
		return res, err
	}

	slog.InfoContext(ctx, "seeding started",
		"hosts", opts.Hosts, "guests", opts.Guests, "listings_per_host", opts.ListingsPerHost)

	if opts.ShouldClean {
		if err := clearData(ctx, db); err != nil {
			slog.WarnContext(ctx, "could not clear existing data, continuing", "err", err)
		}
	}

	if opts.AdminEmail != "" {
		if _, err := f.CreateUser(ctx, models.RoleAdmin, func(u *models.User) {
			u.Name = "Administrator"
			u.Email = opts.AdminEmail
		}); err != nil {
			return res, err
		}
		res.Users++
	}

	guests := make([]*models.User, 0, opts.Guests)
	for i := 0; i < opts.Guests; i++ {
		u, err := f.CreateUser(ctx, models.RoleGuest)
		if err != nil {
			return res, err
		}
		guests = append(guests, u)
		res.Users++
	}

	hosts := make([]*models.User, 0, opts.Hosts)
	var live []*models.Listing
	for i := 0; i < opts.Hosts; i++ {
		host, err := f.CreateUser(ctx, models.RoleHost)
		if err != nil {
			return res, err
		}
		res.Users++
		if _, err := f.CreateHostProfile(ctx, host); err != nil {
			return res, err
		}
		hosts = append(hosts, host)

		for j := 0; j < opts.ListingsPerHost; j++ {
			status := statusCycle[(i*opts.ListingsPerHost+j)%len(statusCycle)]
			l, err := f.CreateListing(ctx, host, status)
			if err != nil {
				return res, err
			}
			res.Listings++
			if status == models.StatusLive {
				live = append(live, l)
			}
		}
	}

	for _, l := range live {
		// One review per guest and listing.
		n := min(opts.ReviewsPerListing, len(guests))
		offset := int(l.ID) % max(len(guests), 1)
		for k := 0; k < n; k++ {
			if _, err := f.CreateReview(ctx, l, guests[(offset+k)%len(guests)]); err != nil {
				return res, err
			}
			res.Reviews++
		}

		if opts.EventsPerListing > 0 {
			if err := f.CreateActivity(ctx, l, opts.EventsPerListing); err != nil {
				return res, err
			}
			res.Events += opts.EventsPerListing + 1
		}
	}

	if err := recompute(ctx, db, live, hosts); err != nil {
		return res, err
	}

	slog.InfoContext(ctx, "seeding completed",
		"users", res.Users, "listings", res.Listings, "reviews", res.Reviews, "events", res.Events)
	return res, nil
}

func recompute(ctx context.Context, db *gorm.DB, live []*models.Listing, hosts []*models.User) error {
	listingRepo := repository.NewListingRepository(db)
	profileRepo := repository.NewHostProfileRepository(db)
	hostsSvc := service.NewHostProfileService(profileRepo, repository.NewUserRepository(db))
	stats := service.NewStatsService(listingRepo, repository.NewReviewRepository(db), profileRepo, hostsSvc)

	for _, l := range live {
		if _, _, err := stats.RecomputeListingRating(ctx, l.ID); err != nil {
			return fmt.Errorf("recompute rating of listing %d: %w", l.ID, err)
		}
	}
	for _, h := range hosts {
		if err := stats.RefreshHost(ctx, h.ID); err != nil {
			return fmt.Errorf("refresh host %d: %w", h.ID, err)
		}
	}
	return nil
}

// seededTables lists the tables clearData empties, children first.
var seededTables = []string{
	"host_messages", "favorites", "host_settings", "host_activity_events",
	"reviews", "listings", "host_profiles", "users",
}

func clearData(ctx context.Context, db *gorm.DB) error {
	slog.InfoContext(ctx, "clearing existing data")
	if db.Dialector.Name() == "postgres" {
		return db.WithContext(ctx).Exec(
			`TRUNCATE TABLE host_messages, favorites, host_settings, host_activity_events, reviews, listings, host_profiles, users RESTART IDENTITY CASCADE`).Error
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range seededTables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}
