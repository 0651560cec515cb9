package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api"
	m "github.com/RoyceAzure/lab/shopcart/internal/api/middleware"
	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/metrics"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// SetupRouter serverMetrics 與 limiter 可為 nil
func SetupRouter(server *api.Server, logger *zerolog.Logger, serverMetrics *metrics.ServerMetrics, limiter ratelimit.ILimiter) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)
	if serverMetrics != nil {
		r.Use(m.MetricsMiddleware(serverMetrics))
		r.Method(http.MethodGet, "/metrics", serverMetrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(m.NewRateLimitMiddleware(limiter))
		}

		r.Route("/product", func(r chi.Router) {
			r.Get("/", server.ProductHandler.List)
			r.Post("/", server.ProductHandler.Create)
			r.Put("/", server.ProductHandler.Update)
			r.Get("/{"+constants.PathID+"}", server.ProductHandler.Get)
			r.Delete("/{"+constants.PathID+"}", server.ProductHandler.Delete)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/", server.UserHandler.List)
			r.Post("/", server.UserHandler.Create)
			r.Put("/", server.UserHandler.Update)
			r.Get("/{"+constants.PathID+"}", server.UserHandler.Get)
			r.Delete("/{"+constants.PathID+"}", server.UserHandler.Delete)
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", server.OrderHandler.List)
			r.Post("/", server.OrderHandler.Create)
			r.Put("/", server.OrderHandler.Pay)
			r.Get("/{"+constants.PathUserID+"}", server.OrderHandler.GetActive)
			r.Get("/{"+constants.PathUserID+"}/history", server.OrderHandler.History)
		})

		r.Route("/cartItem", func(r chi.Router) {
			r.Get("/", server.CartItemHandler.List)
			r.Get("/{"+constants.PathUserID+"}", server.CartItemHandler.GetCart)
			r.Post("/{"+constants.PathUserID+"}", server.CartItemHandler.Upsert)
			r.Delete("/{"+constants.PathUserID+"}", server.CartItemHandler.Remove)
		})
	})

	return r
}
