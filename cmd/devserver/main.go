// Command devserver runs an in-memory reference backend for local client
// development. State is reseeded on every start.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/collectivehq/collective/internal/common"
	"github.com/collectivehq/collective/internal/logging"
	"github.com/collectivehq/collective/internal/server/httpapi"
	"github.com/collectivehq/collective/internal/server/store"
)

func main() {
	addr := flag.String("a", "127.0.0.1:8080", "listen address")
	accessTTL := flag.Duration("t", 15*time.Minute, "access token validity")
	secret := flag.String("k", "", "JWT signing key (random when empty)")
	flag.Parse()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	key := *secret
	if key == "" {
		k, err := common.MakeRandHexString(32)
		if err != nil {
			log.Error(ctx, "could not generate signing key", "error", err)
			os.Exit(1)
		}
		key = k
	}

	gin.SetMode(gin.ReleaseMode)
	api := httpapi.NewServer(store.NewMemory(), log, []byte(key), *accessTTL)

	srv := &http.Server{Addr: *addr, Handler: api.Router()}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigs
		cancel()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info(ctx, "devserver listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
