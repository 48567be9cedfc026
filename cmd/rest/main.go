package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weaponforge-be/internal/bootstrap"
	"weaponforge-be/internal/config"
	"weaponforge-be/internal/pkg/logger"
	"weaponforge-be/internal/server"
	"weaponforge-be/internal/tracer"
	"weaponforge-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Logging & Tracing
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.MaxConnections, cfg.IsProduction())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(gormDB); err != nil {
			log.Panicf("Migration failed: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	if err := container.EventConsumer.Consume(ctx); err != nil {
		log.Printf("Event consumer failed to start: %v", err)
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			log.Printf("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	sysLogger.Info("MAIN", "Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
