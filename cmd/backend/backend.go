package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/Bezneima/Kucher-retro-back/internal/api"
	"github.com/Bezneima/Kucher-retro-back/internal/api/gateway"
	"github.com/Bezneima/Kucher-retro-back/internal/api/middleware/mwauth"
	"github.com/Bezneima/Kucher-retro-back/internal/api/rstream"
	"github.com/Bezneima/Kucher-retro-back/pkg/config"
	"github.com/Bezneima/Kucher-retro-back/pkg/db"
	"github.com/Bezneima/Kucher-retro-back/pkg/db/gen"
	"github.com/Bezneima/Kucher-retro-back/pkg/eventstream/memory"
	"github.com/Bezneima/Kucher-retro-back/pkg/idwrap"
	"github.com/Bezneima/Kucher-retro-back/pkg/model/mevent"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	go func() {
		<-sc
		cancel()
	}()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	// foreign_keys is per-connection, so it rides the DSN.
	connStr := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", cfg.DBPath)
	database, err := sql.Open("sqlite", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := db.CreateLocalTables(ctx, database); err != nil {
		log.Fatal(err)
	}
	queries := gen.New(database)

	stream := memory.NewInMemorySyncStreamer[idwrap.IDWrap, mevent.BoardEvent]()
	defer stream.Shutdown()

	secret := []byte(cfg.JWTSecret)
	gw := gateway.New(database, queries, stream)
	streamSrv := rstream.New(queries, stream)

	services := []api.Service{
		{Path: "/api/", Handler: mwauth.NewAuthMiddleware(secret, gw.Handler())},
		{Path: "/api/stream", Handler: mwauth.NewAuthMiddleware(secret, streamSrv)},
	}

	slog.Info("starting server", "port", cfg.Port, "db", cfg.DBPath)
	if err := api.ListenServices(ctx, services, cfg.Port); err != nil {
		log.Fatal(err)
	}
}
