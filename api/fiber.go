package api

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	certificate_controller "github.com/sunthewhat/easy-cert-form/api/controllers/certificate"
	"github.com/sunthewhat/easy-cert-form/api/handler"
	"github.com/sunthewhat/easy-cert-form/api/middleware"
	"github.com/sunthewhat/easy-cert-form/api/routes"
	"github.com/sunthewhat/easy-cert-form/common"
	"github.com/sunthewhat/easy-cert-form/internal/generator"
)

type Dependencies struct {
	Generator generator.IGenerator
	Registry  *prometheus.Registry
	BodyLimit int
	Cors      []string
}

func NewApp(deps Dependencies) (*fiber.App, error) {
	cfg := fiber.Config{
		AppName:       "easy cert form",
		ErrorHandler:  handler.HandleError,
		Prefork:       false,
		StrictRouting: true,
		Network:       fiber.NetworkTCP,
		BodyLimit:     deps.BodyLimit,
	}
	app := fiber.New(cfg)

	promMiddleware, err := middleware.NewPrometheusMiddleware(deps.Registry)
	if err != nil {
		return nil, err
	}

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(deps.Cors),
	}))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	routes.Init(app, certificate_controller.NewCertificateController(deps.Generator))

	app.Use(handler.HandleNotFound)

	return app, nil
}

func InitFiber(deps Dependencies) {
	app, err := NewApp(deps)
	if err != nil {
		slog.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", *common.Config.Port)
	err = app.Listen(*common.Config.Port)

	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func corsOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
