// Command seed creates the admin account from ADMIN_* settings and manages demo content.
//
//	go run ./cmd/seed          create the admin unless one exists
//	go run ./cmd/seed -reset   remove every admin and recreate the default one
//	go run ./cmd/seed -sample  replace products, gallery and testimonials with sample content
//	go run ./cmd/seed -clear   delete all products, gallery items, testimonials and enquiries
//
// -clear runs before -sample when both are given. Admin accounts are untouched by either.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/config"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/repositories"
	"github.com/diamondgarment/backend/services"
	"github.com/diamondgarment/backend/utils"
)

func main() {
	reset := flag.Bool("reset", false, "delete all admin users and recreate the default admin")
	sample := flag.Bool("sample", false, "replace products, gallery and testimonials with sample content")
	clearAll := flag.Bool("clear", false, "delete all content and contact enquiries")
	flag.Parse()

	cfg := config.Load()
	logger := config.InitLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = logger.WithContext(ctx)

	client, db, err := config.ConnectDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	validator := utils.NewValidator()

	if *clearAll || *sample {
		products := repositories.NewContentRepository[models.Product](db, config.ProductsCollection)
		gallery := repositories.NewContentRepository[models.GalleryItem](db, config.GalleryCollection)
		testimonials := repositories.NewContentRepository[models.Testimonial](db, config.TestimonialsCollection)
		contacts := repositories.NewContentRepository[models.Contact](db, config.ContactsCollection)

		s := &seeder{
			products:     services.NewProductService(products, validator),
			gallery:      services.NewGalleryService(gallery, validator),
			testimonials: services.NewTestimonialService(testimonials, validator),
			collections: []collection{
				{name: config.ProductsCollection, store: products},
				{name: config.GalleryCollection, store: gallery},
				{name: config.TestimonialsCollection, store: testimonials},
				{name: config.ContactsCollection, store: contacts},
			},
		}
		if *clearAll {
			if err := s.clear(ctx); err != nil {
				log.Fatal().Err(err).Msg("failed to clear data")
			}
		}
		if *sample {
			if err := s.loadSamples(ctx); err != nil {
				log.Fatal().Err(err).Msg("failed to load sample content")
			}
		}
		return
	}

	auth := services.NewAuthService(
		repositories.NewUserRepository(db),
		services.NewTokenManager(cfg.JWTSecret, cfg.JWTExpire),
		services.NewHasher(),
		validator,
		models.AdminCredentials{Name: cfg.Admin.Name, Email: cfg.Admin.Email, Password: cfg.Admin.Password},
	)

	var user *models.User
	if *reset {
		user, err = auth.ResetAdmin(ctx)
	} else {
		user, err = auth.CreateAdmin(ctx)
	}
	if apperror.Is(err, apperror.KindConflict) {
		log.Info().Msg("admin user already exists, nothing to do (use -reset to recreate)")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}

	log.Info().Str("email", user.Email).Msg("admin user ready")
}
