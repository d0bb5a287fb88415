package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chickhealth-client-go/internal/adminweb"
	"chickhealth-client-go/internal/config"
	"chickhealth-client-go/internal/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "chickhealth-adminweb")
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := adminweb.NewServer(cfg, log)
	httpServer := &http.Server{
		Addr:    cfg.AdminListenAddr,
		Handler: server.Router(ctx),
	}

	go func() {
		log.Info("listening", zap.String("addr", cfg.AdminListenAddr), zap.String("backend", cfg.APIOrigin))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	cancel()
	server.Hub.Shutdown()
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(ctxShutdown)
	log.Info("shutdown complete")
}
