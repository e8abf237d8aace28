package main

import (
	"net/http"
	"os"

	"affinity-backend/internal/affinity"
	"affinity-backend/internal/api"
	"affinity-backend/internal/config"
	"affinity-backend/internal/logging"
	"affinity-backend/internal/service"
	"affinity-backend/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Getenv("AFFINITY_CONFIG"))
	if err != nil {
		logging.InitializeDefault()
		logging.Fatal("loading config", zap.Error(err))
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.InitializeDefault()
		logging.Warn("falling back to default logging", zap.Error(err))
	}
	defer logging.Sync()

	// Initialize Services
	store := state.NewStore()
	loader := service.NewCachedLoader(service.NewLoader(cfg.Data), cfg.Data.CacheEnabled)
	engine := affinity.NewEngine()
	exportService := service.NewExportService()

	// Initialize Handler
	handler := api.NewHandler(store, loader, engine, exportService)

	// Router Setup
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// CORS - Allow the dashboard frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Basket Affinity Backend is Running"))
	})

	// Register all API Routes
	handler.RegisterRoutes(r)

	logging.Info("starting affinity backend",
		zap.String("port", cfg.Port),
		zap.String("data_dir", cfg.Data.Dir),
		zap.Bool("cache", cfg.Data.CacheEnabled))

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logging.Fatal("server failed to start", zap.Error(err))
	}
}
