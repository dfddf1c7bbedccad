// Package http is the HTTP adapter: it translates the form and
// autocomplete endpoints into calls on the repositories and services.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	handlers   *Handlers
	logger     *zap.Logger
}

// NewServer creates a new HTTP server with the given handlers
func NewServer(config ServerConfig, handlers *Handlers, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:   config,
		router:   gin.New(),
		handlers: handlers,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		s.logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// setupRoutes configures all HTTP routes. The trailing slashes follow
// the URL conventions the form clients already use.
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.GET("/health", h.HealthCheck)

	api := s.router.Group("/api")
	{
		api.GET("/ufs/", h.SearchUFs)
		api.GET("/cidades/", h.CidadesPorEstado)
		api.GET("/cidades-busca/", h.SearchCidades)

		api.GET("/servidores/", h.SearchServidores)
		api.GET("/servidores/:id/", h.GetServidor)
		api.GET("/motoristas/", h.SearchMotoristas)
		api.GET("/motoristas/:id/", h.GetServidor)
		api.GET("/viajantes/", h.ListViajantes)

		api.GET("/veiculos/", h.SearchVeiculos)
		api.GET("/veiculo/", h.GetVeiculoPorPlaca)

		api.GET("/cep/:cep/", h.LookupCEP)

		api.POST("/diarias/calcular/", h.CalcularDiarias)

		api.POST("/oficios/", h.SalvarOficio)
		api.POST("/oficios/:id/demonstrativo/", h.GerarDemonstrativo)
	}

	s.router.POST("/cargos/criar/", h.CriarCargo)
	s.router.GET("/dashboard/data/", h.DashboardData)

	modal := s.router.Group("/modal")
	{
		modal.POST("/viajantes/novo/", h.NovoViajante)
		modal.POST("/veiculos/novo/", h.NovoVeiculo)
	}
}

// Start starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("starting http server", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("http server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("http server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("http server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("http server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
