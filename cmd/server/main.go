package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kronibola/internal/auth"
	"kronibola/internal/booking"
	"kronibola/internal/config"
	"kronibola/internal/ledger"
	"kronibola/internal/notify"
	"kronibola/internal/registry"
	"kronibola/internal/server"
	"kronibola/internal/sheets"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := sheets.New(cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
	if err != nil {
		log.Fatalf("sheets: %v", err)
	}

	notifier, err := notify.NewNotifier(cfg)
	if err != nil {
		log.Fatalf("notify: %v", err)
	}

	svc := booking.New(
		registry.New(store, cfg.DefaultCapacity),
		ledger.New(store),
		notifier,
		booking.Options{
			AdminWhatsApp:         cfg.AdminWhatsApp,
			PendingOverdue:        cfg.PendingOverdue,
			AllowRejectedResubmit: cfg.AllowRejectedResubmit,
		},
	)

	gate := auth.NewGate(cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenTTL)
	httpSrv := server.New(cfg, svc, gate)

	go func() {
		log.Printf("HTTP listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)

	log.Println("bye")
}
