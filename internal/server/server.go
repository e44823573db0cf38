// Package server boots the application: configuration, database, cache,
// storage, the middleware stack, and the route table.
package server

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/ordercrm/app/controllers"
	"github.com/shashiranjanraj/ordercrm/app/repositories"
	"github.com/shashiranjanraj/ordercrm/app/routes"
	"github.com/shashiranjanraj/ordercrm/app/services"
	"github.com/shashiranjanraj/ordercrm/app/views"
	"github.com/shashiranjanraj/ordercrm/config"
	"github.com/shashiranjanraj/ordercrm/pkg/cache"
	"github.com/shashiranjanraj/ordercrm/pkg/database"
	"github.com/shashiranjanraj/ordercrm/pkg/guard"
	"github.com/shashiranjanraj/ordercrm/pkg/logger"
	"github.com/shashiranjanraj/ordercrm/pkg/metrics"
	"github.com/shashiranjanraj/ordercrm/pkg/middleware"
	"github.com/shashiranjanraj/ordercrm/pkg/router"
	"github.com/shashiranjanraj/ordercrm/pkg/session"
	"github.com/shashiranjanraj/ordercrm/pkg/storage"
	"github.com/shashiranjanraj/ordercrm/pkg/view"
)

// Start boots every subsystem and serves HTTP until the process exits.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if config.AuditMongoURI() != "" {
		h, err := logger.EnableMongoAudit()
		if err != nil {
			logger.Warn("audit log disabled", "error", err)
		} else {
			defer h.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		// Sessions degrade without Redis; keep booting so the operator
		// sees the failure in context.
		logger.Warn("cache unavailable", "error", err)
	}
	storage.Connect()

	handler, err := BuildHandler()
	if err != nil {
		return err
	}

	addr := ":" + config.AppPort()
	logger.Info("ordercrm listening", "addr", addr, "env", config.AppEnv())
	return http.ListenAndServe(addr, handler)
}

// BuildHandler assembles the middleware stack and route table. Split from
// Start so tests can exercise the full handler without a listener.
func BuildHandler() (http.Handler, error) {
	render, err := view.New(views.FS())
	if err != nil {
		return nil, err
	}

	userRepo := repositories.NewUserRepository(database.DB)
	customerRepo := repositories.NewCustomerRepository(database.DB)
	productRepo := repositories.NewProductRepository(database.DB)
	orderRepo := repositories.NewOrderRepository(database.DB)

	authSvc := services.NewAuthService(userRepo)
	orderSvc := services.NewOrderService(orderRepo, customerRepo, productRepo)

	r := router.New()

	// Global middleware, outermost first:
	//  1. Prometheus metrics  — outermost for accurate total latency
	//  2. Recovery            — catches panics before they kill the goroutine
	//  3. Request ID          — inject unique ID before anything logs
	//  4. Logger              — logs request_id from context
	//  5. Session             — load/create session cookie via Redis
	//  6. Rate limiter        — reject abusers early
	//  7. Authenticate        — resolve identity from session or remember cookie
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))
	r.Use(guard.Authenticate)

	// Prometheus endpoint, outside the guarded routes.
	r.Get("/metrics", "metrics", metrics.Handler())

	// Uploaded files (customer avatars) from the local disk.
	if root := storage.LocalRoot(); root != "" {
		r.Mount("/storage", http.StripPrefix("/storage/", http.FileServer(http.Dir(root))))
	}

	routes.Register(r, routes.Controllers{
		Auth:      controllers.NewAuthController(authSvc, render),
		Dashboard: controllers.NewDashboardController(orderSvc, render),
		Customer:  controllers.NewCustomerController(orderSvc, render),
		Order:     controllers.NewOrderController(orderSvc, render),
		Product:   controllers.NewProductController(orderSvc, render),
	})

	return r.Handler(), nil
}
