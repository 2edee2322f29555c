package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/kapu/chess-rooms-go/internal/config"
	"github.com/kapu/chess-rooms-go/internal/gate"
	"github.com/kapu/chess-rooms-go/internal/hub"
	"github.com/kapu/chess-rooms-go/internal/msgcat"
	"github.com/kapu/chess-rooms-go/internal/obslog"
	"github.com/kapu/chess-rooms-go/internal/room"
	"github.com/kapu/chess-rooms-go/internal/wsserver"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = obslog.L().Sync() }()

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	store := room.NewStore(cfg.HistoryLimit)
	srv := wsserver.New(cfg.AllowedOrigins)
	h := hub.New(store, catalog, srv)
	srv.AttachHub(h)

	g := gate.New(cfg.RoomPassword, cfg.RoomPasswordHash)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.HandleWS)
	mux.HandleFunc("/api/password/check", g.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		obslog.L().Info("server_listening", zap.String("addr", cfg.ListenAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obslog.L().Fatal("server_error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	obslog.L().Info("server_shutdown")
	srv.CloseAll()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		obslog.L().Warn("shutdown_error", zap.Error(err))
	}
}
