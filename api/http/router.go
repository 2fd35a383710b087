package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/artem13815/chatbot/api/http/handlers"
	"github.com/artem13815/chatbot/api/http/presenter"
)

// StaticMount is where the UI assets are served; frontend/index.html links them from here.
const StaticMount = "/static"

// NewApp creates the Fiber app with the common middleware stack. Errors that
// escape a handler, panics included, are rendered as presenter.ErrorResponse.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "sample-chatbot",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${latency} ${method} ${path} ${respHeader:X-Request-ID}\n",
	}))
	return app
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, health *handlers.HealthHandler, chat *handlers.ChatHandler, ui *handlers.UIHandler) {
	app.Get("/", ui.Index)
	app.Static(StaticMount, ui.Dir())

	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	api := app.Group("/api")
	api.Post("/chat", chat.Chat)
	api.Get("/models", chat.Models)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return presenter.Error(c, code, err.Error())
}
