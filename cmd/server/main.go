package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/config"
	"github.com/mobimart/storefront/internal/handlers"
	"github.com/mobimart/storefront/internal/middleware"
	"github.com/mobimart/storefront/internal/session"
	"github.com/mobimart/storefront/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"backend_mode", cfg.Backend.Mode,
		"log_level", cfg.LogLevel,
	)

	// The session store binds one backend client per caller identity.
	factory := clientFactory(cfg, log)
	sessions := session.NewStore(factory, time.Duration(cfg.Session.TTLMinutes)*time.Minute)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, cfg.Backend.Mode)
	productHandler := handlers.NewProductHandler(log)
	cartHandler := handlers.NewCartHandler(log)
	checkoutHandler := handlers.NewCheckoutHandler(log)
	orderHandler := handlers.NewOrderHandler(log)
	accountHandler := handlers.NewAccountHandler(sessions, log)
	adminHandler := handlers.NewAdminHandler(log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration for the browser presentation layer
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.SessionHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// Session issuance sits outside the session middleware
	r.Post("/api/session", accountHandler.Login)
	r.Delete("/api/session", accountHandler.Logout)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))

		// Catalog
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)

		// Cart
		r.Get("/cart", cartHandler.GetCart)
		r.Put("/cart", cartHandler.ReplaceCart)
		r.Delete("/cart", cartHandler.ClearCart)
		r.Post("/cart/items", cartHandler.AddLine)
		r.Put("/cart/items/{productId}", cartHandler.SetLineQuantity)

		// Checkout and orders
		r.Post("/checkout", checkoutHandler.PlaceOrder)
		r.Get("/orders", orderHandler.ListOrders)
		r.Get("/orders/{orderId}", orderHandler.GetOrder)

		// Caller identity
		r.Get("/me", accountHandler.Me)
		r.Put("/me/profile", accountHandler.SaveProfile)

		// Admin
		r.Post("/admin/claim", adminHandler.ClaimAdmin)
		r.Post("/admin/transfer", adminHandler.TransferAdmin)
		r.Post("/admin/product", adminHandler.AddProduct)
		r.Put("/admin/product/{productId}", adminHandler.UpdateProduct)
		r.Delete("/admin/product/{productId}", adminHandler.DeleteProduct)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// clientFactory selects the remote service implementation. Memory mode runs
// an in-process seeded backend for local development; http mode talks the
// real RPC contract.
func clientFactory(cfg *config.Config, log *slog.Logger) session.ClientFactory {
	switch cfg.Backend.Mode {
	case config.BackendModeMemory:
		log.Info("using in-memory backend with seed catalog")
		mem := backend.NewMemoryWithSeed()
		return mem.ForIdentity
	default:
		timeout := time.Duration(cfg.Backend.Timeout) * time.Second
		return func(identity string) backend.Client {
			return backend.NewHTTPClient(cfg.Backend.BaseURL, identity, timeout)
		}
	}
}
