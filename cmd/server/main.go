package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crewtravel-service/internal/airports"
	"crewtravel-service/internal/domain/repository"
	"crewtravel-service/internal/hotelblock"
	"crewtravel-service/internal/infrastructure/config"
	"crewtravel-service/internal/infrastructure/persistence"
	"crewtravel-service/internal/interface/httpapi"
	mongoRepo "crewtravel-service/internal/interface/repository"
	"crewtravel-service/internal/ticketing"
	"crewtravel-service/internal/usecase"
	"crewtravel-service/pkg/logger"
	"crewtravel-service/pkg/metrics"
	"crewtravel-service/pkg/sheetdate"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Crew Travel Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Airport directory, either a Postgres reference table or the
	// OpenFlights dataset cached in memory
	var airportDirectory repository.AirportDirectory
	if cfg.AirportsSource == "db" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airportDirectory = mongoRepo.NewGormAirportDirectory(gormDB)
	} else {
		airportDirectory = mongoRepo.NewOpenFlightsDirectory(cfg.AirportsURL, cfg.AirportsMaxAge, nil, log)
	}

	// Set up repositories
	ticketSnapshots := mongoRepo.NewMongoTicketSnapshotRepository(db)
	hotelSnapshots := mongoRepo.NewMongoHotelSnapshotRepository(db)
	crewRepo := mongoRepo.NewMongoCrewRepository(db)

	// Set up metrics
	appMetrics := metrics.NewMetrics("crewtravel")

	// Set up the pipeline
	dates := &sheetdate.Parser{
		SerialMin: cfg.ExcelSerialMin,
		SerialMax: cfg.ExcelSerialMax,
	}
	localizer := airports.NewLocalizer(airportDirectory, log)
	ticketNormalizer := ticketing.NewNormalizer(dates, localizer, log)
	hotelNormalizer := hotelblock.NewNormalizer(dates, log)

	ticketProcessor := usecase.NewTicketProcessor(ticketSnapshots, crewRepo, ticketNormalizer, dates, log, appMetrics)
	hotelProcessor := usecase.NewHotelProcessor(hotelSnapshots, hotelNormalizer, log, appMetrics)

	// Set up HTTP server
	mux := http.NewServeMux()
	httpapi.NewHandler(ticketProcessor, hotelProcessor, log).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Crew Travel Service stopped")
}
