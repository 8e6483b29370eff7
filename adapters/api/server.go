package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"datascope/internal"
	"datascope/internal/analysis"
	"datascope/internal/config"
	"datascope/internal/power"
	"datascope/internal/profiling"
)

// Server exposes the profiling and power-analysis engine over HTTP.
// It is a transport shell only: all state lives in the request/response
// cycle and the engine packages stay free of HTTP concerns.
type Server struct {
	router     *gin.Engine
	cfg        *config.Config
	profiler   *profiling.Profiler
	detector   *analysis.Detector
	calculator *power.Calculator
	logger     *internal.Logger
}

// NewServer wires the engine behind a gin router
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = int64(cfg.Analysis.MaxUploadMB) << 20

	s := &Server{
		router:     router,
		cfg:        cfg,
		profiler:   profiling.NewProfiler(),
		detector:   analysis.NewDetector(),
		calculator: power.NewCalculator(),
		logger:     internal.DefaultLogger.Named("api"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/datasets/profile", s.handleProfile)
		api.POST("/power/sample-size", s.handleSampleSize)
	}
}

// Router exposes the underlying engine for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server on the configured port
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Server.Port)
	s.logger.Info("datascope API listening on %s", addr)
	return s.router.Run(addr)
}
