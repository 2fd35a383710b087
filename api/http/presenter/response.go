package presenter

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const chatErrorPrefix = "Chat error: "

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ModelsResponse carries either the filtered catalog or the provider failure.
// Models is always present on success, even when empty.
type ModelsResponse struct {
	Models []string `json:"models"`
}

type ModelsError struct {
	Error string `json:"error"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// ChatFailure reports a completion failure with its provider description.
func ChatFailure(c *fiber.Ctx, reason string) error {
	return Error(c, http.StatusInternalServerError, chatErrorPrefix+reason)
}

// Models answers 200 in both cases: a catalog failure is data, not an HTTP error.
func Models(c *fiber.Ctx, models []string, err error) error {
	if err != nil {
		return JSON(c, http.StatusOK, ModelsError{Error: err.Error()})
	}
	if models == nil {
		models = []string{}
	}
	return JSON(c, http.StatusOK, ModelsResponse{Models: models})
}
