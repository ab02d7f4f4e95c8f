package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/ports"
	customMiddleware "github.com/cartline/storefront/go/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
	Environment  string
}

type ServerDeps struct {
	AuthService    ports.AuthService
	UserService    ports.UserService
	CatalogService ports.CatalogService
	OrderService   ports.OrderService
	ReviewService  ports.ReviewService
	RateLimitGates customMiddleware.RateLimitGates
	HealthCheckers []ports.HealthChecker
	CacheStats     func() map[string]ports.CacheStats
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	authSvc        ports.AuthService
	userService    ports.UserService
	catalogSvc     ports.CatalogService
	orderSvc       ports.OrderService
	reviewSvc      ports.ReviewService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
	cacheStats     func() map[string]ports.CacheStats
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		authSvc:        deps.AuthService,
		userService:    deps.UserService,
		catalogSvc:     deps.CatalogService,
		orderSvc:       deps.OrderService,
		reviewSvc:      deps.ReviewService,
		healthCheckers: deps.HealthCheckers,
		cacheStats:     deps.CacheStats,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			deps.RateLimitGates,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
