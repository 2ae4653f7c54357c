package routes

import (
	"net"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/diamondgarment/backend/controllers"
	"github.com/diamondgarment/backend/middleware"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/websocket"
)

// AuthService is everything the routes need from authentication.
type AuthService interface {
	controllers.AuthService
	middleware.TokenVerifier
	middleware.Authorizer
}

// Dependencies are the services behind the HTTP API.
type Dependencies struct {
	Logger       zerolog.Logger
	Auth         AuthService
	Products     controllers.ContentService[models.Product]
	Gallery      controllers.ContentService[models.GalleryItem]
	Testimonials controllers.TestimonialService
	Contacts     controllers.ContactService
	Uploads      controllers.UploadService
	DB           controllers.Pinger

	// Optional.
	Redis       *redis.Client
	RateLimiter *middleware.RateLimiter
	Hub         *websocket.Hub
}

// Options switch environment dependent behavior.
type Options struct {
	Production bool
	// Development shows server error details in responses.
	Development bool
	// TrustedProxies are CIDR ranges whose X-Forwarded-For is believed, on top of
	// loopback and private networks.
	TrustedProxies []string
	CORSOrigins    []string
	UploadDir      string
	UploadPath     string
	ImageHosts     []string
	Bootstrap      bool
	Metrics        bool
}

// NewServer builds the echo instance with the middleware stack and every route.
func NewServer(deps Dependencies, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = echo.ExtractIPFromXFFHeader(trustOptions(deps.Logger, opts.TrustedProxies)...)
	e.HTTPErrorHandler = middleware.ErrorHandler(opts.Development)

	e.Use(middleware.RequestContext(deps.Logger))
	e.Use(echoMiddleware.RecoverWithConfig(echoMiddleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			zerolog.Ctx(c.Request().Context()).Error().Err(err).Bytes("stack", stack).Msg("panic recovered")
			return err
		},
	}))
	e.Use(middleware.RequestLogger())
	e.Use(middleware.CORSWithConfig(middleware.NewCORSConfig(opts.Production, opts.CORSOrigins)))
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		ImageHosts: opts.ImageHosts,
		HSTS:       opts.Production,
	}))
	// Leaves room for multipart overhead around a 5MB image.
	e.Use(echoMiddleware.BodyLimit("6M"))
	if deps.RateLimiter != nil {
		e.Use(deps.RateLimiter.RateLimit())
	}

	if opts.Metrics {
		registry := prometheus.NewRegistry()
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Registerer: registry,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: registry}))
	}

	health := controllers.NewHealthController(deps.DB)
	e.Match([]string{http.MethodGet, http.MethodHead}, "/health", health.Health)

	api := e.Group("/api")
	api.GET("/health", health.Health)

	RegisterAuthRoutes(api, deps, opts.Bootstrap)
	RegisterContentRoutes(api, deps)
	RegisterFileRoutes(e, api, deps, opts.UploadPath, opts.UploadDir)
	if deps.Hub != nil {
		RegisterEventRoutes(api, deps)
	}

	return e
}

// adminOnly is the bearer check followed by the stored-role check.
func adminOnly(deps Dependencies) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.JWTMiddleware(deps.Auth),
		middleware.RequireRole(deps.Auth, models.RoleAdmin),
	}
}

func trustOptions(logger zerolog.Logger, cidrs []string) []echo.TrustOption {
	var trust []echo.TrustOption
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			logger.Warn().Str("cidr", cidr).Msg("ignoring invalid trusted proxy range")
			continue
		}
		trust = append(trust, echo.TrustIPRange(ipNet))
	}
	return trust
}
