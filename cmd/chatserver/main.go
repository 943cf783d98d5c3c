// Package main provides the chat server: it bridges a LangGraph-style agent
// state stream to an AG-UI frontend over Server-Sent Events (SSE), composing
// each turn into text messages, property widgets, and thread metadata.
//
// Configuration is via environment variables:
//
//	CHAT_PORT                - Server port (default: 8000)
//	CHAT_LOG_LEVEL           - debug, info, warn, error (default: info)
//	CHAT_TIMEOUT             - Upstream request timeout (default: 60s)
//	AGENT_API_URL            - Agent stream API base URL (required)
//	AGENT_ASSISTANT_ID       - Agent assistant/graph ID (required)
//	DESCRIPTION_API_URL      - Description service base URL (optional)
//	DESCRIPTION_ASSISTANT_ID - Description assistant ID (default: agent)
//	DESCRIPTION_LANGUAGE     - Description language (default: english)
//
// Usage:
//
//	AGENT_API_URL=http://localhost:2024 AGENT_ASSISTANT_ID=agent go run ./cmd/chatserver
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spetersoncode/propstream/agentapi"
	"github.com/spetersoncode/propstream/composer"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	setupLogging(cfg.LogLevel)

	httpClient := &http.Client{Timeout: cfg.Timeout}

	streamClient := agentapi.NewStreamClient(cfg.AgentAPIURL, cfg.AgentAssistantID,
		agentapi.WithHTTPClient(httpClient),
	)

	opts := []composer.Option{}
	if cfg.DescriptionAPIURL != "" {
		describer := agentapi.NewDescriptionClient(cfg.DescriptionAPIURL, cfg.DescriptionAssistantID,
			agentapi.WithHTTPClient(httpClient),
			agentapi.WithLanguage(cfg.DescriptionLanguage),
		)
		opts = append(opts, composer.WithDescriber(describer))
	} else {
		slog.Warn("DESCRIPTION_API_URL not set, detail views will not generate descriptions")
	}

	c := composer.New(composer.AgentStreams{Client: streamClient}, opts...)

	mux := http.NewServeMux()
	mux.Handle("/api/chat", corsMiddleware(NewChatHandler(c)))
	mux.Handle("/api/action", corsMiddleware(NewActionHandler(c)))
	mux.HandleFunc("/health", healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("chat server starting",
		"port", cfg.Port,
		"agent_api", cfg.AgentAPIURL,
		"assistant_id", cfg.AgentAssistantID,
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	slog.Info("server stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
