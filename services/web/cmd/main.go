package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nimeshabuddhika/creditpath-web/pkg"
	"github.com/nimeshabuddhika/creditpath-web/services/web/app"
	"go.uber.org/zap"
)

func main() {
	// Optional .env for local runs; real env vars win
	_ = godotenv.Load()

	pkg.InitLogger("web")
	logger := pkg.Logger
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, cleanup, err := app.NewApp(ctx, logger)
	if err != nil {
		logger.Fatal("failed_to_build_app", zap.Error(err))
	}
	defer cleanup()

	go func() {
		logger.Info("web client started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	osSignal := <-quit
	logger.Info("Received shutdown signal", zap.String("signal", osSignal.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("Service shutdown completed successfully")
}
