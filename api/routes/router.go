// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"flightly/internal/booking"
	"flightly/internal/flights"
	"flightly/internal/notifications"
	"flightly/internal/payment"
	"flightly/internal/planes"
	"flightly/internal/shared/config"
	"flightly/internal/shared/database"
	"flightly/internal/tickets"
	"flightly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier notifications.Service

	// Cross-wired services (for dependency injection)
	cacheService  cache.Service
	planeService  planes.Service
	flightService flights.Service
	ticketService tickets.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Service) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Shared Redis-backed cache for read-heavy services
	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.Redis)
	}

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Setup plane routes (must be before flight routes for dependency injection)
		r.setupPlaneRoutes(api)

		// Setup flight routes
		r.setupFlightRoutes(api)

		// Reservation routes live at the root (legacy wire shapes) but depend
		// on flight and plane services, so they are wired here
		r.setupTicketRoutes(engine)

		// Setup booking wizard routes
		r.setupBookingRoutes(api)
	}

	// Flights report seat occupancy out of the tickets table; wired late to
	// avoid a circular dependency.
	r.flightService.SetOccupancyReader(r.ticketService)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "flightly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "flightly-backend",
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
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupPlaneRoutes configures cabin layout routes
func (r *Router) setupPlaneRoutes(rg *gin.RouterGroup) {
	// Initialize plane dependencies
	planeRepo := planes.NewRepository(r.db.PostgreSQL)
	planeService := planes.NewService(planeRepo)
	if r.cacheService != nil {
		planeService.SetCacheService(r.cacheService)
	}
	planeController := planes.NewController(planeService)

	// Store plane service for dependency injection
	r.planeService = planeService

	// Setup plane routes
	planes.SetupPlaneRoutes(rg, planeController)
}

// setupFlightRoutes configures flight catalog routes
func (r *Router) setupFlightRoutes(rg *gin.RouterGroup) {
	// Initialize flight dependencies
	flightRepo := flights.NewRepository(r.db.PostgreSQL)
	flightService := flights.NewService(flightRepo, r.planeService)
	if r.cacheService != nil {
		flightService.SetCacheService(r.cacheService)
	}
	flightController := flights.NewController(flightService)

	// Store flight service for dependency injection
	r.flightService = flightService

	// Setup flight routes
	flights.SetupFlightRoutes(rg, flightController)
}

// setupTicketRoutes configures reservation and ticket lookup routes
func (r *Router) setupTicketRoutes(engine *gin.Engine) {
	// Initialize ticket dependencies
	ticketRepo := tickets.NewRepository(r.db.PostgreSQL)
	gateway := payment.NewClient(payment.Config{
		BaseURL: r.config.Payment.BaseURL,
		APIKey:  r.config.Payment.APIKey,
		Timeout: r.config.Payment.Timeout,
	})
	flightReader := tickets.NewFlightServiceAdapter(r.flightService, r.planeService)

	// Itinerary emails are best-effort: without the notification pipeline
	// reservations still go through, just silently.
	var publisher tickets.Publisher
	if r.notifier != nil {
		publisher = notifications.NewTicketPublisherAdapter(r.notifier)
	}

	ticketService := tickets.NewService(ticketRepo, flightReader, gateway, publisher)
	ticketController := tickets.NewController(ticketService)

	// Store ticket service for dependency injection
	r.ticketService = ticketService

	// Setup ticket routes
	tickets.SetupTicketRoutes(engine, ticketController)
}

// setupBookingRoutes configures the booking wizard session routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	// Initialize booking dependencies
	store := booking.NewRedisStore(r.cacheService, r.db.Redis)
	bookingService := booking.NewService(store, r.flightService, r.ticketService)
	bookingController := booking.NewController(bookingService)

	// Setup booking routes
	booking.SetupBookingRoutes(rg, bookingController)
}
