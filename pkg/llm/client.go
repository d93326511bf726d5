package llm

import (
	"context"
	"fmt"
	"strings"
)

const systemPrompt = `You are a concise crypto news editor. Output ONLY valid JSON with three keys: "summary" (2-3 sentence factual summary), "caption" (<=120 chars), and "image_prompt" (an object with keys style, scene, elements, restrictions).`

type Input struct {
	Title   string
	URL     string
	Excerpt string
}

// Result is the parsed three-key response from the model.
type Result struct {
	Summary     string            `json:"summary"`
	Caption     string            `json:"caption"`
	ImagePrompt map[string]string `json:"image_prompt"`
}

type Summarizer interface {
	Summarize(ctx context.Context, in Input) (*Result, error)
}

// RawContentError reports a model response that could not be parsed as JSON
// even after extraction. The raw text is preserved so the caller can still
// use it as a degraded summary.
type RawContentError struct {
	Content string
}

func (e *RawContentError) Error() string {
	return "model response is not valid JSON"
}

func userPrompt(in Input) string {
	return fmt.Sprintf(
		"Title: %s\nURL: %s\n\nExcerpt: %s\n\nReturn JSON exactly like: {\"summary\":\"...\",\"caption\":\"...\",\"image_prompt\":{\"style\":\"\",\"scene\":\"\",\"elements\":\"\",\"restrictions\":\"\"}}",
		in.Title, in.URL, in.Excerpt,
	)
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
