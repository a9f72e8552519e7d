// Package bootstrap wires the runtime dependencies shared by the cmd binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RubenLpc/BucovinaStay-backend/internal/cache"
	"github.com/RubenLpc/BucovinaStay-backend/internal/config"
	"github.com/RubenLpc/BucovinaStay-backend/internal/database"
	"github.com/RubenLpc/BucovinaStay-backend/internal/middleware"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"
	"github.com/RubenLpc/BucovinaStay-backend/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultRootEmail = "root@bucovinastay.local"

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo fills an empty development database with demo data.
	SeedDemo bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := EnsureDevRootAdmin(ctx, cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development root admin: %w", err)
	}

	if opts.SeedDemo && isDevelopment(cfg) {
		if err := seedIfEmpty(ctx, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

// ServiceName identifies the API in traces.
const ServiceName = "bucovinastay-api"

// TracingConfig maps the TRACING_* settings onto the tracer options.
func TracingConfig(cfg *config.Config, version string) observability.TracingConfig {
	return observability.TracingConfig{
		ServiceName:    ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       strings.ToLower(strings.TrimSpace(cfg.TracingExporter)),
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	}
}

func isDevelopment(cfg *config.Config) bool {
	return cfg != nil && strings.EqualFold(cfg.Env, "development")
}

func seedIfEmpty(ctx context.Context, db *gorm.DB) error {
	var listings int64
	if err := db.WithContext(ctx).Model(&models.Listing{}).Count(&listings).Error; err != nil {
		return err
	}
	if listings > 0 {
		return nil
	}
	opts := seed.DefaultOptions()
	opts.AdminEmail = ""
	_, err := seed.Seed(ctx, db, opts)
	return err
}

// EnsureDevRootAdmin creates or promotes the development root admin when
// DEV_BOOTSTRAP_ROOT is set. It is a no-op outside development.
func EnsureDevRootAdmin(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if db == nil || !isDevelopment(cfg) || !cfg.DevBootstrapRoot {
		return nil
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = defaultRootEmail
	}
	password := cfg.DevRootPassword
	if password == "" {
		return fmt.Errorf("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	var root models.User
	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("email = ?", email).First(&root).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				Name:     "Root",
				Email:    email,
				Password: string(hashedPassword),
				Role:     models.RoleAdmin,
			}
			return tx.Create(&root).Error
		case findErr != nil:
			return findErr
		default:
			// Existing account keeps its password; only its access is restored.
			return tx.Model(&models.User{}).Where("id = ?", root.ID).
				Updates(map[string]any{"role": models.RoleAdmin, "disabled": false}).Error
		}
	}); err != nil {
		return err
	}

	cache.InvalidateUser(ctx, root.ID)
	middleware.Logger.InfoContext(ctx, "development root admin ensured", slog.String("email", email), slog.Uint64("user_id", uint64(root.ID)))
	return nil
}
