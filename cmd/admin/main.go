// Package main provides admin management utilities for BucovinaStay.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/RubenLpc/BucovinaStay-backend/internal/config"
	"github.com/RubenLpc/BucovinaStay-backend/internal/database"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  go run ./cmd/admin promote <user_id|email>   - Promote user to admin")
	fmt.Fprintln(w, "  go run ./cmd/admin demote <user_id|email>    - Demote admin to guest")
	fmt.Fprintln(w, "  go run ./cmd/admin list-admins               - List all admins")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stdout)
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := run(context.Background(), db, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run executes one admin command. Role changes go through UserService so the
// last-admin guard and cache invalidation apply exactly as they do over HTTP.
func run(ctx context.Context, db *gorm.DB, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return fmt.Errorf("missing command")
	}

	userRepo := repository.NewUserRepository(db)
	hosts := service.NewHostProfileService(repository.NewHostProfileRepository(db), userRepo)
	users := service.NewUserService(userRepo, hosts)

	switch args[0] {
	case "promote", "demote":
		if len(args) < 2 {
			return fmt.Errorf("usage: go run ./cmd/admin %s <user_id|email>", args[0])
		}
		target, err := lookup(ctx, userRepo, args[1])
		if err != nil {
			return err
		}
		return setRole(ctx, users, target, args[0] == "promote", out)
	case "list-admins":
		return listAdmins(ctx, users, out)
	default:
		usage(out)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func lookup(ctx context.Context, repo repository.UserRepository, ref string) (*models.User, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return repo.GetByID(ctx, uint(id))
	}
	u, err := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(ref)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, models.NewNotFoundError("User", ref)
	}
	return u, nil
}

func setRole(ctx context.Context, users *service.UserService, target *models.User, promote bool, out io.Writer) error {
	if promote == target.IsAdmin() {
		state := "not an admin"
		if promote {
			state = "already an admin"
		}
		fmt.Fprintf(out, "User %s (ID: %d) is %s\n", target.Email, target.ID, state)
		return nil
	}

	role := models.RoleGuest
	if promote {
		role = models.RoleAdmin
	}
	updated, err := users.PatchUser(ctx, service.OperatorID, target.ID, service.UserPatch{Role: &role})
	if err != nil {
		return fmt.Errorf("update %s: %w", target.Email, err)
	}

	fmt.Fprintf(out, "✅ %s (ID: %d) is now %s\n", updated.Email, updated.ID, updated.Role)
	return nil
}

func listAdmins(ctx context.Context, users *service.UserService, out io.Writer) error {
	admins, _, err := users.ListUsers(ctx, models.RoleAdmin, 100, 0)
	if err != nil {
		return fmt.Errorf("fetch admins: %w", err)
	}

	if len(admins) == 0 {
		fmt.Fprintln(out, "No admins found in the system")
		return nil
	}

	fmt.Fprintln(out, "\n📋 Current Admins:")
	fmt.Fprintln(out, "─────────────────────────────────────")
	for _, admin := range admins {
		fmt.Fprintf(out, "ID: %d | Name: %s | Email: %s | Disabled: %t\n", admin.ID, admin.Name, admin.Email, admin.Disabled)
	}
	fmt.Fprintln(out, "─────────────────────────────────────")
	return nil
}
