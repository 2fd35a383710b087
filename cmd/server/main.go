// @title         Sample Chatbot API
// @version       1.0.0
// @description   Forwards chat messages to an LLM completion API and serves the browser UI.
// @BasePath      /
// @schemes       http
// @host          localhost:8000
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"

	_ "github.com/artem13815/chatbot/docs"

	// internal imports
	"github.com/artem13815/chatbot/api/http"
	"github.com/artem13815/chatbot/api/http/handlers"
	"github.com/artem13815/chatbot/pkg/chat"
	"github.com/artem13815/chatbot/pkg/config"
	"github.com/artem13815/chatbot/pkg/health"
	"github.com/artem13815/chatbot/pkg/health/checkers"
	"github.com/artem13815/chatbot/pkg/llm"
	"github.com/artem13815/chatbot/pkg/llm/openai"
)

func main() {
	// Load configuration from env/.env; refuses to start without OPENAI_API_KEY
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	llmClient := openai.New(cfg.OpenAI.APIKey, openai.WithBaseURL(cfg.OpenAI.BaseURL))

	opts := chat.Options{
		SystemPrompt: cfg.Chat.SystemPrompt,
		Params: llm.Params{
			Model:       cfg.OpenAI.Model,
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Temperature: cfg.OpenAI.Temperature,
		},
		ModelFilter:     cfg.Chat.ModelFilter,
		MaxPromptTokens: cfg.Chat.MaxPromptTokens,
	}
	if cfg.Chat.MaxPromptTokens > 0 {
		counter, err := openai.NewTokenCounter(cfg.OpenAI.Model)
		if err != nil {
			log.Printf("token counter unavailable, history will not be trimmed: %v", err)
		} else {
			opts.Counter = counter
		}
	}
	chatUC := chat.NewService(llmClient, opts)

	readiness := health.NewService(checkers.NewLLMChecker(llmClient))

	app := http.NewApp()
	http.Register(app,
		handlers.NewHealthHandler(readiness),
		handlers.NewChatHandler(chatUC),
		handlers.NewUIHandler(cfg.FrontendDir),
	)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("HTTP server listening on :%s (model %s)", cfg.Port, cfg.OpenAI.Model)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
