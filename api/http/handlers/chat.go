package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/chatbot/api/http/presenter"
	"github.com/artem13815/chatbot/pkg/chat"
)

type ChatHandler struct {
	uc chat.UseCase
}

func NewChatHandler(uc chat.UseCase) *ChatHandler { return &ChatHandler{uc: uc} }

type chatRequest struct {
	Message string      `json:"message"`
	History []chat.Turn `json:"history"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// Chat forwards the message and the caller-supplied history to the model.
// @Summary Send a chat message
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   input body chatRequest true "message and prior turns"
// @Success 200 {object} chatResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /api/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var body chatRequest
	if err := c.BodyParser(&body); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	req, err := chat.ParseRequest(body.Message, body.History)
	if err != nil {
		return h.fail(c, err)
	}
	out, err := h.uc.Reply(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, chatResponse{
		Response:  out.Text,
		Timestamp: out.Timestamp.Format(time.RFC3339),
	})
}

// Models lists the provider models matching the configured filter. Provider
// failures are reported in the body, not as an HTTP error.
// @Summary List available models
// @Tags    chat
// @Produce json
// @Success 200 {object} presenter.ModelsResponse
// @Router  /api/models [get]
func (h *ChatHandler) Models(c *fiber.Ctx) error {
	models, err := h.uc.Models(c.Context())
	if err != nil {
		log.Printf("[%s] list models: %v", c.GetRespHeader(fiber.HeaderXRequestID), err)
		return presenter.Models(c, nil, errors.New(reason(err)))
	}
	return presenter.Models(c, models, nil)
}

func (h *ChatHandler) fail(c *fiber.Ctx, err error) error {
	var chatErr *chat.Error
	if errors.As(err, &chatErr) && chatErr.Code == chat.ErrorInvalidInput {
		return presenter.Error(c, http.StatusBadRequest, chatErr.Reason)
	}
	log.Printf("[%s] chat: %v", c.GetRespHeader(fiber.HeaderXRequestID), err)
	return presenter.ChatFailure(c, reason(err))
}

func reason(err error) string {
	var chatErr *chat.Error
	if errors.As(err, &chatErr) {
		return chatErr.Reason
	}
	return err.Error()
}
