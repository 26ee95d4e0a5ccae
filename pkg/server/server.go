package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/codemend/codemend/pkg/config"
	handlers "github.com/codemend/codemend/pkg/handlers/http"
	"github.com/codemend/codemend/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type HandlerTransport struct {
	FixHandler      handlers.Handler
	ClassifyHandler handlers.Handler
}

type Server struct {
	config           *config.Config
	logger           *logrus.Logger
	router           *fiber.App
	handlerTransport HandlerTransport
	metricsStarted   bool
}

func NewServer(cfg *config.Config, logger *logrus.Logger, transport HandlerTransport) *Server {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		Network:               fiber.NetworkTCP,
		BodyLimit:             1 * 1024 * 1024,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
	})
	r.Use(recover.New())

	return &Server{
		config:           cfg,
		logger:           logger,
		router:           r,
		handlerTransport: transport,
	}
}

func (s *Server) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.WithFields(logrus.Fields{
		"addr":    addr,
		"version": version.Version,
	}).Info("starting fix server")
	return s.router.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.router.Shutdown()
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.Post("/fixes", s.handlerTransport.FixHandler.Handle)
		v1.Post("/classifications", s.handlerTransport.ClassifyHandler.Handle)
	}
}

func (s *Server) setupHealthCheck() {
	s.router.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": version.Version,
			"time":    time.Now().Format(time.RFC3339),
		})
	})
}

func (s *Server) setupMetricsEndpoint() {
	if !s.config.Metrics.Enabled {
		s.logger.Info("prometheus metrics are disabled by configuration")
		return
	}
	if s.metricsStarted {
		return
	}
	s.metricsStarted = true

	metricsApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	metricsApp.Use(recover.New())

	metricsApp.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	go func() {
		addr := fmt.Sprintf(":%d", s.config.Server.MetricsPort)
		if err := metricsApp.Listen(addr); err != nil {
			if !strings.Contains(err.Error(), "address already in use") {
				s.logger.WithError(err).Error("failed to start metrics server")
			}
		}
	}()
}
