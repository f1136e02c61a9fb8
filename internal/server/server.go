// Package server exposes the boundary adapter over HTTP and WebSocket.
package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/litescript/ls-sunbridge/internal/bridge"
	"github.com/litescript/ls-sunbridge/internal/config"
	"github.com/litescript/ls-sunbridge/internal/logging"
	"github.com/litescript/ls-sunbridge/internal/spa"
	"github.com/litescript/ls-sunbridge/internal/version"
)

// Server wires the adapter, configuration, and logger behind a gin router.
type Server struct {
	cfg     config.Config
	adapter *bridge.Adapter
	logger  *logging.Logger
}

// New creates a server. A nil logger discards output.
func New(cfg config.Config, adapter *bridge.Adapter, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		cfg:     cfg,
		adapter: adapter,
		logger:  logger.WithPrefix("server"),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)

	api := router.Group("/api/v1")
	{
		api.GET("/position", s.handlePosition)
		api.GET("/ws", s.handleStream)
	}

	return router
}

// Run starts the HTTP server on the configured listen address and blocks.
func (s *Server) Run() error {
	s.logger.Info("listening on %s", s.cfg.Server.Listen)
	return s.Router().Run(s.cfg.Server.Listen)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":       "ok",
		"version":      version.Version,
		"live_records": s.adapter.Live(),
	})
}

// computeAt runs a full calculation for the configured observer at the given
// instant. The caller must release the returned record.
func (s *Server) computeAt(at time.Time) *bridge.Result {
	obs := s.cfg.Observer
	at = at.In(time.FixedZone("local", int(obs.Timezone*3600)))

	return s.adapter.Compute(
		at.Year(), int(at.Month()), at.Day(), at.Hour(), at.Minute(),
		float64(at.Second())+float64(at.Nanosecond())/1e9,
		obs.Timezone,
		obs.Latitude, obs.Longitude, obs.Elevation,
		s.cfg.Atmosphere.Pressure, s.cfg.Atmosphere.Temperature,
		0, 0,
		s.cfg.Surface.Slope, s.cfg.Surface.AzmRotation,
		s.cfg.Atmosphere.Refraction,
		spa.FuncAll,
	)
}
