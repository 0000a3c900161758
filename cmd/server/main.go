/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Ophelia's Oasis reservation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load TOML configuration
  3. Initialize the store (sqlite, json or memory)
  4. Build the reservation engine
  5. Configure HTTP router and daily-task scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to the TOML config file (default: config.toml)
  -port    Override the configured HTTP port
  -db      Override the configured storage path
           Use ":memory:" with the sqlite driver for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the daily-task scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (configurable timeout)
  4. Close the store
  5. Exit

EXAMPLES:
  # Run with the default config
  ./server

  # Run with an in-memory database
  ./server -db=":memory:"

  # Run on a different port
  ./server -port=3000

SEE ALSO:
  - config/config.go: Configuration schema and defaults
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omrtre/HotelReservation/api"
	"github.com/omrtre/HotelReservation/config"
	"github.com/omrtre/HotelReservation/hotel"
	memstore "github.com/omrtre/HotelReservation/hotel/store"
	"github.com/omrtre/HotelReservation/store/jsonfile"
	"github.com/omrtre/HotelReservation/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "config.toml", "Path to TOML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "Storage path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	// Initialize store
	store, closeStore, err := openStore(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer closeStore()
	log.Printf("Storage: %s (%s)", cfg.Storage.Driver, cfg.Storage.Path)

	// Build the engine
	engine := hotel.New(store, hotel.SystemClock(), hotel.Config{
		Capacity:      cfg.Hotel.Capacity,
		DefaultRate:   hotel.Dollars(cfg.Hotel.DefaultRate),
		LocatorPrefix: cfg.Hotel.LocatorPrefix,
		MaxStayNights: cfg.Hotel.MaxStayNights,
	})

	// Initialize handler and router
	handler := api.NewHandler(engine)

	var metrics *api.Metrics
	if cfg.Metrics.Enabled {
		metrics = api.NewMetrics("hotel-reservation")
		log.Printf("Metrics enabled at %s", cfg.Metrics.Path)
	}

	router := api.NewRouter(handler, api.RouterOptions{
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
	})

	// Daily-task scheduler
	scheduler := api.NewDailyScheduler(engine)
	scheduler.Enabled = cfg.Scheduler.Enabled
	scheduler.CheckInterval = cfg.Scheduler.CheckInterval()
	scheduler.Start()
	defer scheduler.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🏨 Server starting on http://localhost:%d", cfg.Server.Port)
		log.Printf("📊 API available at http://localhost:%d/api", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// openStore builds the configured Store implementation. The returned func
// releases whatever the driver holds open.
func openStore(cfg config.Storage) (hotel.Store, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		st, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	case "json":
		st, err := jsonfile.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	case "memory":
		return memstore.NewMemory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
