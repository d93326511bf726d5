package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coinpulse/internal/model"
	"coinpulse/pkg/imagegen"
	"coinpulse/pkg/llm"
	"coinpulse/pkg/news"
)

const (
	captionMax    = 120
	rawSummaryMax = 800
)

// Enricher derives a summary, caption and optional illustration for an
// article. Every external call is guarded: Enrich always returns a usable
// result, degrading field by field when the summarizer or image model fails.
type Enricher struct {
	summarizer llm.Summarizer
	imager     imagegen.Generator
}

// NewEnricher accepts nil for either dependency; the corresponding stage is
// skipped and its fallback used instead.
func NewEnricher(summarizer llm.Summarizer, imager imagegen.Generator) *Enricher {
	return &Enricher{summarizer: summarizer, imager: imager}
}

func (e *Enricher) Enrich(ctx context.Context, art news.Article) model.Enriched {
	title := art.Headline()

	enriched := model.Enriched{
		Summary:     fmt.Sprintf("%s — read more: %s", title, art.URL),
		Caption:     truncate(title, captionMax),
		ImagePrompt: map[string]string{"scene": title},
	}

	if e.summarizer != nil {
		e.summarize(ctx, art, title, &enriched)
	}

	if e.imager != nil {
		img, err := e.imager.Generate(ctx, imagegen.FlattenPrompt(enriched.ImagePrompt))
		if err != nil {
			slog.Error("image generation failed", "error", err, "title", title)
		} else {
			enriched.Image = img
		}
	}

	return enriched
}

func (e *Enricher) summarize(ctx context.Context, art news.Article, title string, enriched *model.Enriched) {
	res, err := e.summarizer.Summarize(ctx, llm.Input{
		Title:   title,
		URL:     art.URL,
		Excerpt: art.Snippet(),
	})
	if err == nil {
		if res.Summary != "" {
			enriched.Summary = res.Summary
		}
		if res.Caption != "" {
			enriched.Caption = truncate(res.Caption, captionMax)
		}
		if len(res.ImagePrompt) > 0 {
			enriched.ImagePrompt = res.ImagePrompt
		}
		return
	}

	var raw *llm.RawContentError
	if errors.As(err, &raw) {
		slog.Warn("summarizer returned unparseable output, using raw text", "title", title)
		enriched.Summary = truncate(raw.Content, rawSummaryMax)
		return
	}

	slog.Error("summarize failed, using fallback summary", "error", err, "title", title)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
