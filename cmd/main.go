package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/saeidalz13/battleship-engine/api"
	"github.com/saeidalz13/battleship-engine/db"
	"github.com/saeidalz13/battleship-engine/db/sqlc"
	"github.com/saeidalz13/battleship-engine/internal/config"
	mb "github.com/saeidalz13/battleship-engine/models/battleship"
	mc "github.com/saeidalz13/battleship-engine/models/connection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var analytics api.Analytics
	if cfg.AnalyticsEnabled() {
		psqlDb := db.MustConnectToDb(cfg.DatabaseUrl, cfg.MigrationDir)
		defer psqlDb.Close()
		analytics = sqlc.NewDbManager(psqlDb).Analytics
	} else {
		log.Println("DATABASE_URL is empty; analytics disabled")
	}

	sessionManager := mc.NewBattleshipSessionManager(
		mc.WithCleanupInterval(cfg.SessionCleanupInterval),
		mc.WithGracePeriod(cfg.ReconnectGracePeriod),
	)
	go sessionManager.CleanupPeriodically(ctx)

	gameManager := mb.NewBattleshipGameManager()

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", api.NewRequestProcessor(sessionManager, gameManager, analytics))

	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: time.Second * 5,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Println(err)
		}
	}()

	log.Printf("Listening to port %d (stage: %s)\n", cfg.Port, cfg.Stage)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalln(err)
	}
}
