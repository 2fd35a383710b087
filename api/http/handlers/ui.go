package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/chatbot/api/http/presenter"
)

const indexFile = "index.html"

// UIHandler serves the browser UI from a directory on disk.
type UIHandler struct {
	dir string
}

func NewUIHandler(dir string) *UIHandler { return &UIHandler{dir: dir} }

func (h *UIHandler) Dir() string { return h.dir }

// Index returns the UI root document, read from disk on every request.
// @Summary Chat UI
// @Tags    ui
// @Produce html
// @Success 200 {string} string
// @Failure 500 {object} presenter.ErrorResponse
// @Router  / [get]
func (h *UIHandler) Index(c *fiber.Ctx) error {
	data, err := os.ReadFile(filepath.Join(h.dir, indexFile))
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "Frontend files not found")
	}
	c.Type("html", "utf-8")
	return c.Status(http.StatusOK).Send(data)
}
