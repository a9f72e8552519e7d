// Command main runs the database seeder for BucovinaStay.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/RubenLpc/BucovinaStay-backend/internal/config"
	"github.com/RubenLpc/BucovinaStay-backend/internal/database"
	"github.com/RubenLpc/BucovinaStay-backend/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	defaults := seed.DefaultOptions()

	hosts := flag.Int("hosts", defaults.Hosts, "Number of hosts to create")
	guests := flag.Int("guests", defaults.Guests, "Number of guests to create")
	listings := flag.Int("listings", defaults.ListingsPerHost, "Listings per host")
	reviews := flag.Int("reviews", defaults.ReviewsPerListing, "Reviews per live listing")
	events := flag.Int("events", defaults.EventsPerListing, "Guest activity events per live listing")
	days := flag.Int("days", defaults.MaxDays, "Spread timestamps over this many past days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randomSeed := flag.Int64("seed", 0, "Random seed, 0 picks one from the clock")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store the demo password unhashed (tests only)")
	adminEmail := flag.String("admin", defaults.AdminEmail, "Email of the seeded admin, empty to skip")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d hosts x %d listings, %d guests, clean=%v\n", *hosts, *listings, *guests, *shouldClean)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := defaults
	opts.Hosts = *hosts
	opts.Guests = *guests
	opts.ListingsPerHost = *listings
	opts.ReviewsPerListing = *reviews
	opts.EventsPerListing = *events
	opts.MaxDays = *days
	opts.ShouldClean = *shouldClean
	opts.RandomSeed = *randomSeed
	opts.SkipBcrypt = *skipBcrypt
	opts.AdminEmail = *adminEmail

	res, err := seed.Seed(context.Background(), db, opts)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d listings, %d reviews, %d activity events.\n",
		res.Users, res.Listings, res.Reviews, res.Events)
	log.Printf("📧 All seeded users have the password: %s\n", seed.DefaultPassword)
}
