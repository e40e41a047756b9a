package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httperr "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/lifecycle"
	"github.com/aevon-lab/devicescout/internal/core/storage"
)

type Server struct {
	Engine *gin.Engine
	Addr   string
	store  storage.Pinger
	bus    *lifecycle.Bus
}

// Options carries the collaborators of the ops routes. Every field is optional.
type Options struct {
	Mode     string
	Store    storage.Pinger
	Bus      *lifecycle.Bus
	Gatherer prometheus.Gatherer
}

func New(addr string, opts Options) *Server {
	// Set Gin mode based on configuration
	if opts.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	s := &Server{
		Engine: r,
		Addr:   addr,
		store:  opts.Store,
		bus:    opts.Bus,
	}

	r.GET("/health", s.healthHandler)

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	if s.bus != nil {
		services := r.Group("/v1/services")
		services.POST("/:name/start", s.controlHandler(func(name string) lifecycle.SystemEvent {
			return lifecycle.StartService{Service: name}
		}))
		services.POST("/:name/stop", s.controlHandler(func(name string) lifecycle.SystemEvent {
			return lifecycle.StopService{Service: name}
		}))
	}

	return s
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	// Check store connectivity
	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			slog.Error("Health check failed: store unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "store unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"store":  "connected",
	})
}

// controlHandler publishes a lifecycle request onto the bus. The addressed
// service reacts asynchronously, so the response only confirms delivery.
func (s *Server) controlHandler(event func(name string) lifecycle.SystemEvent) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.Param("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidRequestError,
				Message:   "service name is required",
			})
			return
		}

		ev := event(name)
		if err := s.bus.Publish(c.Request.Context(), ev); err != nil {
			slog.Error("Failed to publish lifecycle request", "service", name, "error", err)
			c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "event bus unavailable",
				Details:   err.Error(),
			})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{"service": name, "requested": requestName(ev)})
	}
}

func requestName(ev lifecycle.SystemEvent) string {
	if _, ok := ev.(lifecycle.StopService); ok {
		return "stop"
	}
	return "start"
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Engine,
	}

	slog.Info("Starting HTTP Server...", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
