// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "seatbook/docs"
	"seatbook/internal/allocation"
	"seatbook/internal/analytics"
	"seatbook/internal/bookings"
	"seatbook/internal/cancellation"
	"seatbook/internal/notifications"
	"seatbook/internal/seats"
	"seatbook/internal/shared/config"
	"seatbook/internal/shared/database"
	"seatbook/internal/shared/middleware"
	"seatbook/internal/users"
	"seatbook/pkg/cache"
	"seatbook/pkg/logger"
	"seatbook/pkg/metrics"
	"seatbook/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "seatbook-backend"

// Dependencies are the process-wide collaborators built in main
type Dependencies struct {
	Strategy    allocation.Strategy
	Publisher   notifications.Publisher
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	RateLimiter *ratelimit.RateLimiter
	Logger      *logger.Logger
}

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	deps   Dependencies

	seatService seats.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, deps Dependencies) *Router {
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if deps.Strategy == nil {
		deps.Strategy = allocation.RowFirst{}
	}
	return &Router{
		config: cfg,
		db:     db,
		deps:   deps,
	}
}

// NewEngine builds the gin engine with the global middleware chain and every
// route mounted
func (r *Router) NewEngine() *gin.Engine {
	engine := gin.New()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(middleware.RequestLogger(r.deps.Logger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if r.config.MetricsEnabled {
		engine.Use(r.deps.Metrics.GinMiddleware())
	}

	// Global rate limiting middleware (applied to all routes)
	if r.deps.RateLimiter != nil {
		engine.Use(ratelimit.Middleware(r.deps.RateLimiter, r.deps.Logger))
	}

	r.SetupRoutes(engine)
	return engine
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if r.config.MetricsEnabled {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// API routes, all behind the bearer token gate
	api := engine.Group(r.config.GetAPIBasePath(), middleware.JWTAuth(r.config.JWT.Secret))
	{
		seatGroup := api.Group("/seats")
		bookingGroup := api.Group("/bookings")

		r.setupSeatRoutes(seatGroup)
		r.setupBookingRoutes(bookingGroup, seatGroup)
		r.setupCancellationRoutes(bookingGroup, seatGroup)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the seat booking API",
			"docs":    "/swagger/index.html",
		})
	})

	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "operational",
			"api_version":      r.config.APIVersion,
			"placement_policy": r.deps.Strategy.Name(),
			"redis_cache":      r.db.GetRedis() != nil,
			"timestamp":        time.Now(),
		})
	})
}

func (r *Router) seats() seats.Service {
	if r.seatService == nil {
		repo := seats.NewRepository(r.db.GetPostgreSQL())
		r.seatService = seats.NewService(repo, cache.NewService(r.db.GetRedis()), r.config.Redis.CacheTTL, r.deps.Logger)
	}
	return r.seatService
}

// setupSeatRoutes configures the seat read routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seats.SetupSeatRoutes(rg, seats.NewController(r.seats()))
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(bookingGroup, seatGroup *gin.RouterGroup) {
	pg := r.db.GetPostgreSQL()
	bookingService := bookings.NewService(bookings.Deps{
		DB:           pg,
		Bookings:     bookings.NewRepository(pg),
		Seats:        seats.NewRepository(pg),
		Users:        users.NewRepository(pg),
		Strategy:     r.deps.Strategy,
		Availability: r.seats(),
		Publisher:    r.deps.Publisher,
		Metrics:      r.deps.Metrics,
		Logger:       r.deps.Logger,
	}, bookings.Options{
		MaxAttempts:  r.config.Booking.MaxAttempts,
		RetryBackoff: r.config.Booking.RetryBackoff,
	})

	bookings.SetupBookingRoutes(bookingGroup, seatGroup, bookings.NewController(bookingService))
}

// setupCancellationRoutes configures cancel-all and reset
func (r *Router) setupCancellationRoutes(bookingGroup, seatGroup *gin.RouterGroup) {
	pg := r.db.GetPostgreSQL()
	cancellationService := cancellation.NewService(cancellation.Deps{
		DB:           pg,
		Bookings:     bookings.NewRepository(pg),
		Seats:        seats.NewRepository(pg),
		Users:        users.NewRepository(pg),
		Availability: r.seats(),
		Publisher:    r.deps.Publisher,
		Metrics:      r.deps.Metrics,
		Logger:       r.deps.Logger,
	})

	cancellation.SetupCancellationRoutes(bookingGroup, seatGroup, cancellation.NewController(cancellationService))
}

// setupAnalyticsRoutes configures the admin dashboard
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsService := analytics.NewService(
		analytics.NewRepository(r.db.GetPostgreSQL()),
		cache.NewService(r.db.GetRedis()),
	)
	analytics.SetupAnalyticsRoutes(rg, analytics.NewController(analyticsService))
}
