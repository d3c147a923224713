package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kaffehuset/coffeeshop-api/internal/api/handler"
	"github.com/kaffehuset/coffeeshop-api/internal/api/middleware"
	"github.com/kaffehuset/coffeeshop-api/internal/core/service"
	mongodb "github.com/kaffehuset/coffeeshop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kaffehuset/coffeeshop-api/internal/infrastructure/db/redis"
	"github.com/kaffehuset/coffeeshop-api/internal/infrastructure/queue"
)

// Options carries the runtime settings the router needs.
type Options struct {
	JWTSecret    string
	TokenTTL     time.Duration
	EventWorkers int
	Logger       zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the order-event dispatcher, which the caller starts with
// its own lifecycle context.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("coffeeshop"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, opts.JWTSecret, opts.TokenTTL)
	userService := service.NewUserService(userRepo, opts.Logger)
	productService := service.NewProductService(productRepo, opts.Logger)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, opts.Logger)
	eventService := service.NewOrderEventService(orderRepo, dedup, opts.Logger)
	dispatcher := queue.NewDispatcher(opts.EventWorkers, eventService, opts.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	eventHandler := handler.NewOrderEventHandler(dispatcher)

	session := middleware.Session(opts.JWTSecret)
	auth := middleware.Auth(opts.JWTSecret)
	adminOnly := middleware.AdminOnly()

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- User routes ---
	// Session (not Auth) on purpose: an anonymous request must reach the
	// core so the policy classifies it as Unauthenticated with the
	// endpoint's own wording.
	users := e.Group("/api/users", session)
	users.GET("", userHandler.List)
	users.GET("/me", userHandler.Self)
	users.GET("/:username", userHandler.Profile)
	users.PUT("/:username", userHandler.UpdateProfile)
	users.PUT("/:username/make-admin", userHandler.MakeAdmin)
	users.PUT("/:username/remove-admin", userHandler.RemoveAdmin)
	users.DELETE("/:username", userHandler.Delete)

	// --- Catalog routes ---
	e.GET("/api/products", productHandler.List)
	e.GET("/api/products/:id", productHandler.Get)
	adminProducts := e.Group("/api/products", auth, adminOnly)
	adminProducts.POST("", productHandler.Create)
	adminProducts.PUT("/:id", productHandler.Update)
	adminProducts.DELETE("/:id", productHandler.Delete)

	// --- Cart and order routes ---
	cart := e.Group("/api/cart", auth)
	cart.GET("", cartHandler.Items)
	cart.POST("", cartHandler.Put)
	cart.DELETE("/:productId", cartHandler.Remove)

	e.POST("/api/checkout", orderHandler.Checkout, auth)

	orders := e.Group("/api/orders", auth)
	orders.GET("", orderHandler.List)
	orders.GET("/:orderNumber", orderHandler.Get)
	orders.POST("/events", eventHandler.Receive, adminOnly)
	orders.POST("/events/batch", eventHandler.ReceiveBatch, adminOnly)

	// --- Ops routes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e, dispatcher
}
