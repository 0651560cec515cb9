package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/shopcart/internal/api"
	"github.com/RoyceAzure/lab/shopcart/internal/api/handler"
	"github.com/RoyceAzure/lab/shopcart/internal/api/router"
	"github.com/RoyceAzure/lab/shopcart/internal/appcontext"
	"github.com/RoyceAzure/lab/shopcart/internal/config"
	"github.com/rs/zerolog/log"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init application")
		return
	}
	logger := app.Logger

	// 初始化 handler
	server := api.NewServer(
		handler.NewProductHandler(app.ProductService),
		handler.NewUserHandler(app.UserService),
		handler.NewOrderHandler(app.OrderService),
		handler.NewCartItemHandler(app.CartService),
	)

	// 設置路由
	r := router.SetupRouter(server, logger, app.ServerMetrics, app.RateLimiter)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		logger.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Server shutdown error")
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Application shutdown error")
		}

		shutdownCompleted <- struct{}{}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("Server starting")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	<-shutdownCompleted
	logger.Info().Msg("closed completed")
}
