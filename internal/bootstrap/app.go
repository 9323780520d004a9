// Package bootstrap assembles the application dependency graph.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"targeting-backend/internal/catalog"
	"targeting-backend/internal/chat"
	"targeting-backend/internal/llm"
	"targeting-backend/internal/llm/anthropic"
	"targeting-backend/internal/llm/gemini"
	"targeting-backend/internal/shared/config"
	"targeting-backend/internal/shared/server"
	"targeting-backend/internal/shared/telemetry"
	"targeting-backend/internal/webscan"
)

// App holds shared dependencies.
type App struct {
	Config      config.Config
	Router      *gin.Engine
	Catalog     *catalog.Catalog
	LLM         llm.Client
	ChatService *chat.Service
	ScanService *webscan.Service
	ChatHandler *chat.Handler
	ScanHandler *webscan.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	telemetry.Init(cfg.LogLevel)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	telemetry.Info("catalog.loaded", map[string]any{
		"path":   cfg.CatalogPath,
		"titles": cat.Len(),
	})

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Catalog: cat,
		LLM:     llmClient,
	}

	app.ChatService = &chat.Service{Catalog: cat, LLM: llmClient}
	app.ScanService = webscan.NewService(llmClient, cfg.ScanMaxChars)
	app.ChatHandler = chat.NewHandler(app.ChatService)
	app.ScanHandler = webscan.NewHandler(app.ScanService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      cfg,
		ChatHandler: app.ChatHandler,
		ScanHandler: app.ScanHandler,
	})

	return app, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		client, err := gemini.NewClient(context.Background(), os.Getenv("GEMINI_API_KEY"), cfg.LLMModel)
		if err != nil {
			return nil, err
		}
		telemetry.Info("llm.configured", map[string]any{
			"provider": "gemini",
			"model":    client.Model(),
		})
		return client, nil
	case "none":
		return llm.PlaceholderClient{}, nil
	default:
		return anthropic.NewClient(os.Getenv("ANTHROPIC_API_KEY"), cfg.LLMModel)
	}
}
