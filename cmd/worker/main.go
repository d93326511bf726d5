package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"coinpulse/internal/config"
	"coinpulse/internal/handler"
	"coinpulse/internal/seen"
	"coinpulse/internal/worker"
	"coinpulse/pkg/imagegen"
	"coinpulse/pkg/llm"
	"coinpulse/pkg/news"
	"coinpulse/pkg/telegram"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if missing := cfg.MissingRequired(); len(missing) > 0 {
		// Keep running for observability; the affected capability degrades.
		slog.Error("missing required env vars, worker will run degraded", "vars", strings.Join(missing, ", "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store := seen.New(cfg.RedisURL, cfg.SeenFile)

	var summarizer llm.Summarizer
	switch {
	case cfg.LLMProvider == "anthropic" && cfg.AnthropicKey != "":
		summarizer = llm.NewAnthropicClient(cfg.AnthropicKey)
	case cfg.OpenAIKey != "":
		summarizer = llm.NewOpenAIClient(cfg.OpenAIKey)
	default:
		slog.Error("no summarizer API key configured, articles will use fallback summaries")
	}

	var imager imagegen.Generator
	if cfg.GeminiKey != "" {
		client, err := imagegen.NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("failed to initialize gemini client, image generation disabled", "error", err)
		} else {
			imager = client
		}
	} else {
		slog.Warn("GEMINI_API_KEY not set, image generation disabled")
	}

	var publisher worker.Publisher
	bot, err := telegram.NewBotClient(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		slog.Error("telegram unavailable, posts will be dropped", "error", err)
		publisher = telegram.Disabled{}
	} else {
		publisher = bot
	}

	feed := news.NewCryptoPanicClient(cfg.CryptoPanicKey, cfg.CryptoPanicURL)

	if cfg.EnableHealth {
		go func() {
			r := handler.NewHealthRouter()
			slog.Info("starting health server", "port", cfg.HealthPort)
			if err := r.Run(fmt.Sprintf(":%d", cfg.HealthPort)); err != nil {
				slog.Error("health server stopped", "error", err)
			}
		}()
	}

	w := worker.New(feed, store, worker.NewEnricher(summarizer, imager), publisher, cfg.FetchLimit, cfg.PollInterval)
	w.Run(ctx)
}
