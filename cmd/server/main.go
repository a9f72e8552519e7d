// Command server is the entry point for the BucovinaStay backend API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/bootstrap"
	"github.com/RubenLpc/BucovinaStay-backend/internal/config"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"
	"github.com/RubenLpc/BucovinaStay-backend/internal/server"

	"github.com/joho/godotenv"
)

// @title BucovinaStay API
// @version 1.0
// @description Accommodation marketplace for Bucovina: listings, moderation, reviews and host dashboards.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@bucovinastay.ro

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	seedDemo := flag.Bool("seed-demo", false, "fill an empty development database with demo data")
	flag.Parse()

	// A missing .env is fine outside local development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	shutdownTracing, err := observability.InitTracing(ctx, bootstrap.TracingConfig(cfg, version))
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	db, redisClient, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SeedDemo: *seedDemo})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	srv, err := server.NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
