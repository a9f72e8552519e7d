// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/activity"
	"github.com/RubenLpc/BucovinaStay-backend/internal/database"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewSQLiteDB opens a private in-memory database with the full schema and default settings.
// All access goes through one connection so concurrent tests see a consistent database.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	require.NoError(t, database.SeedDefaults(context.Background(), db))
	return db
}

// CreateUser inserts a user with the given role.
func CreateUser(t testing.TB, db *gorm.DB, name string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s.%d@example.ro", strings.ToLower(strings.ReplaceAll(name, " ", ".")), dbSeq.Add(1)),
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateListing inserts a listing owned by hostID in the given status, with timestamps
// consistent with that status.
func CreateListing(t testing.TB, db *gorm.DB, hostID uint, status models.ListingStatus) *models.Listing {
	t.Helper()
	now := time.Now().UTC().Add(-time.Hour)
	l := &models.Listing{
		HostID:   hostID,
		Title:    "Casa de sub Rarău",
		Type:     models.TypeCabana,
		City:     "Câmpulung Moldovenesc",
		Price:    350,
		Currency: "RON",
		Capacity: 4,
		Status:   status,
	}
	switch status {
	case models.StatusPending:
		l.SubmittedAt = &now
	case models.StatusLive:
		l.SubmittedAt, l.ApprovedAt = &now, &now
	case models.StatusRejected:
		l.SubmittedAt, l.RejectedAt = &now, &now
		l.RejectionReason = "fotografii neclare"
	case models.StatusPaused:
		l.PausedAt = &now
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

// CreateHostProfile inserts an empty-stats profile for userID.
func CreateHostProfile(t testing.TB, db *gorm.DB, userID uint) *models.HostProfile {
	t.Helper()
	p := &models.HostProfile{
		UserID:             userID,
		DisplayName:        "Gazdă test",
		HostingSince:       time.Now().UTC().AddDate(-1, 0, 0),
		ResponseTimeBucket: models.ResponseUnknown,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// RecordingSink is an activity.Sink that keeps every event in memory.
type RecordingSink struct {
	mu     sync.Mutex
	events []activity.Event
}

// Record stores e.
func (s *RecordingSink) Record(_ context.Context, e activity.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of the recorded events.
func (s *RecordingSink) Events() []activity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]activity.Event(nil), s.events...)
}

// Types returns the recorded event types in order.
func (s *RecordingSink) Types() []models.ActivityType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ActivityType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}
