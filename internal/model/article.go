package model

// Enriched is the per-article output of the enrichment stage. It lives only
// for the iteration that produced it and is discarded after publishing.
type Enriched struct {
	// Summary is the LLM summary, or a deterministic fallback built from the
	// article title and URL when summarization fails.
	Summary string

	// Caption is capped at 120 characters.
	Caption string

	// ImagePrompt describes the desired illustration. At minimum it carries
	// a "scene" key derived from the title.
	ImagePrompt map[string]string

	// Image holds the generated illustration, or nil when image generation
	// is disabled or produced nothing.
	Image []byte
}
