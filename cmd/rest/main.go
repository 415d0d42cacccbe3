package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"volunteer-marketplace-be/internal/bootstrap"
	"volunteer-marketplace-be/internal/config"
	"volunteer-marketplace-be/internal/server"
	"volunteer-marketplace-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(cfg.Otel)
	defer shutdownTracer(context.Background())

	// 3. Database
	gormDB, err := bootstrap.OpenDatabase(cfg.Database)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Panicf("Failed to build container: %v", err)
	}
	defer container.Close()

	// 5. Background Jobs
	container.Scheduler.Start()

	// 6. Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
