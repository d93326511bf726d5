package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coinpulse/internal/seen"
	"coinpulse/pkg/news"
)

// postPause spaces out consecutive publishes to avoid bursting the chat API.
const postPause = 1200 * time.Millisecond

type Feed interface {
	Fetch(ctx context.Context, limit int) []news.Article
}

type Publisher interface {
	Publish(image []byte, caption string) bool
}

// Worker runs the fetch -> dedupe -> enrich -> publish pipeline. One cycle
// processes a bounded batch sequentially; the poll loop repeats cycles at a
// fixed interval until the context is canceled.
type Worker struct {
	feed      Feed
	store     seen.Store
	enricher  *Enricher
	publisher Publisher

	fetchLimit   int
	pollInterval time.Duration

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func New(feed Feed, store seen.Store, enricher *Enricher, publisher Publisher, fetchLimit int, pollInterval time.Duration) *Worker {
	return &Worker{
		feed:         feed,
		store:        store,
		enricher:     enricher,
		publisher:    publisher,
		fetchLimit:   fetchLimit,
		pollInterval: pollInterval,
		sleep:        time.Sleep,
	}
}

// RunCycle processes one batch and returns how many articles were published.
// A failed publish leaves the article unmarked so a later cycle retries it;
// one article's failure never aborts the rest of the batch.
func (w *Worker) RunCycle(ctx context.Context) int {
	articles := w.feed.Fetch(ctx, w.fetchLimit)
	if len(articles) == 0 {
		slog.Info("no news items fetched this cycle")
		return 0
	}

	posted := 0
	for _, art := range articles {
		key := art.Key()
		if key == "" {
			continue
		}
		if w.store.IsSeen(ctx, key) {
			slog.Debug("skipping already seen article", "id", key)
			continue
		}

		title := art.Headline()
		slog.Info("processing article", "title", title)

		enriched := w.enricher.Enrich(ctx, art)
		caption := fmt.Sprintf("%s\n\n🔗 <a href=\"%s\">Read more</a>", enriched.Summary, art.URL)

		if !w.publisher.Publish(enriched.Image, caption) {
			slog.Warn("failed to publish article, will not mark as seen", "title", title)
			continue
		}

		w.store.MarkSeen(ctx, key)
		posted++
		w.sleep(postPause)
	}

	slog.Info("cycle complete", "posted", posted)
	return posted
}

// Run executes cycles forever at the configured interval. A panic inside a
// cycle is logged and confined to that cycle; the loop itself only stops when
// ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	slog.Info("starting poll loop", "interval", w.pollInterval)
	for {
		w.runGuarded(ctx)

		select {
		case <-ctx.Done():
			slog.Info("poll loop stopped")
			return
		case <-time.After(w.pollInterval):
		}
	}
}

func (w *Worker) runGuarded(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("unhandled panic in cycle", "panic", r)
		}
	}()
	w.RunCycle(ctx)
}
