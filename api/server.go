package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/paw-chain/pawswap/api/health"
	"github.com/paw-chain/pawswap/x/swap/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// Server represents the quote API server
type Server struct {
	router  *gin.Engine
	handler http.Handler
	keeper  *keeper.Keeper
	config  *Config
	logger  log.Logger
	meter   metric.Meter
	health  *health.HealthChecker
}

// Config holds server configuration
type Config struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimitRPS    int           `mapstructure:"rate_limit_rps"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Version         string        `mapstructure:"-"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            "5000",
		CORSOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		RateLimitRPS:    100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Version:         "dev",
	}
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// NewServer creates a new API server instance. A nil meter uses the global
// OpenTelemetry meter provider.
func NewServer(k *keeper.Keeper, logger log.Logger, meter metric.Meter, config *Config) (*Server, error) {
	if k == nil {
		return nil, errors.New("keeper is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", config.RateLimitRPS)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if meter == nil {
		meter = otel.Meter("pawswap")
	}

	server := &Server{
		keeper: k,
		config: config,
		logger: logger.With("module", "api"),
		meter:  meter,
		health: health.NewHealthChecker(config.Version),
	}
	server.health.RegisterCheck("stable_solver", health.ProbeCheck("stable solver", server.probeStableSolver))

	if err := server.setupRouter(); err != nil {
		return nil, err
	}

	server.handler = cors.New(cors.Options{
		AllowedOrigins:   config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	}).Handler(server.router)

	return server, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() error {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// Global middleware - ORDER MATTERS!
	// 1. Recovery (must be first to catch panics)
	s.router.Use(RecoveryMiddleware(s.logger))

	// 2. Security headers
	s.router.Use(SecurityHeadersMiddleware())

	// 3. Request ID
	s.router.Use(RequestIDMiddleware())

	// 4. Tracing and request metrics
	tracing, err := TracingMiddleware(s.meter)
	if err != nil {
		return fmt.Errorf("failed to create tracing middleware: %w", err)
	}
	s.router.Use(tracing)

	// 5. Logging
	s.router.Use(LoggerMiddleware(s.logger))

	// 6. Rate limiting
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))

	s.router.GET("/health", gin.WrapF(s.health.HealthHandler))
	s.router.GET("/health/live", gin.WrapF(s.health.LivenessHandler))
	s.router.GET("/health/ready", gin.WrapF(s.health.ReadinessHandler))

	s.registerRoutes()
	return nil
}

// Handler returns the CORS-wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// RegisterHealthCheck adds a component to the health endpoints
func (s *Server) RegisterHealthCheck(name string, check health.CheckFunc) {
	s.health.RegisterCheck(name, check)
}

// probeStableSolver quotes a balanced stable swap with the keeper's solver
// bounds, catching bounds too tight to converge on ordinary pools.
func (s *Server) probeStableSolver(context.Context) error {
	swapCurve, err := s.keeper.BuildCurve(types.CurveInput{CurveType: types.CurveTypeStable, CurveParameters: 100})
	if err != nil {
		return err
	}
	reserve := types.NewUint(1_000_000)
	_, err = swapCurve.Swap(types.NewUint(1000), reserve, reserve, types.AtoB, types.Fees{})
	return err
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.handler,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting quote API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down quote API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("server exited")
	return nil
}
