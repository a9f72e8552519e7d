package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/lifecycle"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

// embedderStub records re-embedding jobs.
type embedderStub struct {
	mu   sync.Mutex
	jobs []uint
	err  error
}

func (e *embedderStub) Enqueue(_ context.Context, listingID uint, _, _ string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.jobs = append(e.jobs, listingID)
	return nil
}

func (e *embedderStub) Jobs() []uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]uint(nil), e.jobs...)
}

// stack is every service wired over one sqlite database.
type stack struct {
	db       *gorm.DB
	sink     *testutil.RecordingSink
	embedder *embedderStub

	listingRepo repository.ListingRepository
	profileRepo repository.HostProfileRepository

	settings *SettingsService
	hosts    *HostProfileService
	stats    *StatsService
	listings *ListingService
	reviews  *ReviewService
	users    *UserService
	activity *ActivityService

	messages     *MessageService
	favorites    *FavoriteService
	hostSettings *HostSettingsService
	analytics    *AnalyticsService

	admin lifecycle.Actor
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db := testutil.NewSQLiteDB(t)

	listingRepo := repository.NewListingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	profileRepo := repository.NewHostProfileRepository(db)
	userRepo := repository.NewUserRepository(db)

	st := &stack{
		db:          db,
		sink:        &testutil.RecordingSink{},
		embedder:    &embedderStub{},
		listingRepo: listingRepo,
		profileRepo: profileRepo,
	}
	st.settings = NewSettingsService(repository.NewSettingsRepository(db))
	st.hosts = NewHostProfileService(profileRepo, userRepo)
	st.stats = NewStatsService(listingRepo, reviewRepo, profileRepo, st.hosts)
	st.listings = NewListingService(ListingDeps{
		Listings: listingRepo,
		Settings: st.settings,
		Hosts:    st.hosts,
		Stats:    st.stats,
		Sink:     st.sink,
		Embedder: st.embedder,
	})
	st.reviews = NewReviewService(reviewRepo, listingRepo, st.stats)
	st.users = NewUserService(userRepo, st.hosts)
	activityRepo := repository.NewActivityRepository(db)
	st.activity = NewActivityService(activityRepo, listingRepo, st.sink)
	st.messages = NewMessageService(repository.NewMessageRepository(db), listingRepo, st.sink)
	st.favorites = NewFavoriteService(repository.NewFavoriteRepository(db), listingRepo)
	st.hostSettings = NewHostSettingsService(repository.NewHostSettingsRepository(db))
	st.analytics = NewAnalyticsService(activityRepo, repository.NewOverviewRepository(db), listingRepo)

	admin := testutil.CreateUser(t, db, "Admin", models.RoleAdmin)
	st.admin = lifecycle.Actor{UserID: admin.ID, Admin: true}
	return st
}

// host creates a host user and returns it as an actor.
func (st *stack) host(t *testing.T) lifecycle.Actor {
	t.Helper()
	u := testutil.CreateUser(t, st.db, "Maria Gazda", models.RoleHost)
	return lifecycle.Actor{UserID: u.ID}
}

func (st *stack) guest(t *testing.T) uint {
	t.Helper()
	return testutil.CreateUser(t, st.db, "Oaspete", models.RoleGuest).ID
}

func (st *stack) setModeration(t *testing.T, patch ModerationPatch) {
	t.Helper()
	_, err := st.settings.Save(context.Background(), st.admin.UserID, SettingsPatch{Moderation: &patch})
	require.NoError(t, err)
}

func (st *stack) reload(t *testing.T, id uint) *models.Listing {
	t.Helper()
	l, err := st.listingRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return l
}

func validListing() ListingInput {
	return ListingInput{
		Title:      "Cabana din Poiana Stampei",
		Type:       models.TypeCabana,
		City:       "Vatra Dornei",
		Price:      420,
		Capacity:   6,
		Facilities: []string{"wifi", "fireplace", "wifi"},
	}
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }
