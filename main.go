package main

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/diamondgarment/backend/config"
	"github.com/diamondgarment/backend/middleware"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/repositories"
	"github.com/diamondgarment/backend/routes"
	"github.com/diamondgarment/backend/services"
	"github.com/diamondgarment/backend/storage"
	"github.com/diamondgarment/backend/utils"
	"github.com/diamondgarment/backend/websocket"
)

func main() {
	cfg := config.Load()
	logger := config.InitLogger(cfg.Env)

	// Ensure correct MIME type for SVG files
	_ = mime.AddExtensionType(".svg", "image/svg+xml")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	client, db, err := config.ConnectDB(connectCtx, cfg.MongoURI, cfg.DBName)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	rdb := config.ConnectRedis(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	local, err := storage.NewLocal(cfg.UploadDir, cfg.UploadPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare local upload storage")
	}

	var external services.FileStore
	var imageHosts []string
	if cfg.Storage.Enabled() {
		store, err := storage.NewObjectStore(cfg.Storage)
		if err == nil {
			err = store.EnsureBucket(ctx)
		}
		if err != nil {
			log.Error().Err(err).Msg("object storage unavailable, uploads will be stored locally")
		} else {
			external = store
			imageHosts = append(imageHosts, store.Host())
			log.Info().Str("bucket", cfg.Storage.Bucket).Msg("uploads go to object storage")
		}
	}

	hub := websocket.NewHub(middleware.NewCORSConfig(cfg.IsProduction(), cfg.CORSAllowedOrigins).AllowOrigins)
	go hub.Run(ctx)

	notifier := services.Notifiers{hub}
	if cfg.SMTP.Enabled() {
		notifier = append(notifier, services.NewEmailNotifier(cfg.SMTP))
	}

	validator := utils.NewValidator()
	authService := services.NewAuthService(
		repositories.NewUserRepository(db),
		services.NewTokenManager(cfg.JWTSecret, cfg.JWTExpire),
		services.NewHasher(),
		validator,
		models.AdminCredentials{Name: cfg.Admin.Name, Email: cfg.Admin.Email, Password: cfg.Admin.Password},
	)

	rateLimiter := middleware.NewRateLimiter()
	go rateLimiter.Cleanup(ctx, time.Hour)

	e := routes.NewServer(routes.Dependencies{
		Logger:       logger,
		Auth:         authService,
		Products:     services.NewProductService(repositories.NewContentRepository[models.Product](db, config.ProductsCollection), validator),
		Gallery:      services.NewGalleryService(repositories.NewContentRepository[models.GalleryItem](db, config.GalleryCollection), validator),
		Testimonials: services.NewTestimonialService(repositories.NewContentRepository[models.Testimonial](db, config.TestimonialsCollection), validator),
		Contacts:     services.NewContactService(repositories.NewContentRepository[models.Contact](db, config.ContactsCollection), validator, notifier),
		Uploads:      services.NewUploadService(local, external),
		DB:           client,
		Redis:        rdb,
		RateLimiter:  rateLimiter,
		Hub:          hub,
	}, routes.Options{
		Production:     cfg.IsProduction(),
		Development:    cfg.IsDevelopment(),
		TrustedProxies: cfg.TrustedProxies,
		CORSOrigins:    cfg.CORSAllowedOrigins,
		UploadDir:      local.Dir(),
		UploadPath:     cfg.UploadPath,
		ImageHosts:     imageHosts,
		Bootstrap:      cfg.BootstrapAllowed(),
		Metrics:        cfg.MetricsEnabled,
	})

	if cfg.BootstrapAllowed() {
		log.Warn().Msg("admin bootstrap endpoints are enabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
