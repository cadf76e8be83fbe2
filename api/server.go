package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"

	"github.com/choice-exchange/choice/api/health"
	factorytypes "github.com/choice-exchange/choice/x/factory/types"
)

// Version is reported by the health endpoint.
const Version = "1.1.2"

// MaxRequestSize caps request bodies.
const MaxRequestSize = 1 << 20

// Server is the read-only HTTP gateway over the choice contracts
type Server struct {
	router      *gin.Engine
	backend     Backend
	config      *Config
	logger      log.Logger
	rateLimiter *RateLimiter
	health      *health.HealthChecker
}

// Config holds server configuration
type Config struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            string        `mapstructure:"port" yaml:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins" yaml:"cors_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	RateLimit *RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "127.0.0.1",
		Port:            "1318",
		CORSOrigins:     []string{"http://localhost:3000"},
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimit:       DefaultRateLimitConfig(),
	}
}

// Validate checks the listen address and the rate limit settings
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("api port is required")
	}
	if c.RateLimit != nil && c.RateLimit.Enabled {
		if err := c.RateLimit.Validate(); err != nil {
			return fmt.Errorf("rate_limit: %w", err)
		}
	}
	return nil
}

// Addr is the host:port the server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewServer creates a new API server instance
func NewServer(backend Backend, config *Config, logger log.Logger) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var rateLimiter *RateLimiter
	if config.RateLimit != nil && config.RateLimit.Enabled {
		var err error
		rateLimiter, err = NewRateLimiter(config.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
		}
	}

	server := &Server{
		backend:     backend,
		config:      config,
		logger:      logger.With("module", "api"),
		rateLimiter: rateLimiter,
		health:      health.NewHealthChecker(Version),
	}

	server.health.RegisterCheck(health.ContractCheck("factory", func(ctx context.Context) error {
		var res factorytypes.ConfigResponse
		return server.query(ctx, backend.FactoryAddress(), factorytypes.NewConfigQuery(), &res)
	}))
	server.health.RegisterCheck(health.HeightCheck(backend.Height))

	server.setupRouter()

	return server, nil
}

// RegisterHealthCheck adds a check to the /health answer
func (s *Server) RegisterHealthCheck(check health.Check) {
	s.health.RegisterCheck(check)
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	// order matters: recovery first, rate limiting before any query runs
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestSizeLimitMiddleware(MaxRequestSize))
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(s.CORSMiddleware())
	if s.rateLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.rateLimiter))
	}

	s.registerRoutes()
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// healthCheck returns the combined check results
func (s *Server) healthCheck(c *gin.Context) {
	response := s.health.PerformChecks(c.Request.Context())

	statusCode := http.StatusOK
	if response.Status == health.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

func (s *Server) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
	})
}

// handleRateLimitStats returns rate limiter statistics
func (s *Server) handleRateLimitStats(c *gin.Context) {
	if s.rateLimiter == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Rate limiter not enabled",
		})
		return
	}
	c.JSON(http.StatusOK, s.rateLimiter.GetStats())
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.router,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.config.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting choice gateway", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.close()
		return fmt.Errorf("gateway stopped: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func (s *Server) close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Close()
	}
}

// query runs a smart query and decodes the answer into res.
func (s *Server) query(ctx context.Context, contract string, req, res any) error {
	bz, err := json.Marshal(req)
	if err != nil {
		return err
	}
	out, err := s.backend.QuerySmart(ctx, contract, bz)
	if err != nil {
		return err
	}
	return json.Unmarshal(out, res)
}
