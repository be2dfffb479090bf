package app

import (
	"fmt"
	"log"
	"strings"

	"skillex/internal/config"
	"skillex/internal/delivery/http/middleware"
	"skillex/internal/delivery/http/routes"
	v1 "skillex/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c.Logger)

	routes.NewRegistry(v1.Deps{
		Config: c.Config,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    c.Hub,
		Logger: c.Logger,
	}).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, starts the websocket hub and returns
// the app with its cleanup function.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	go container.Hub.Run()

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
