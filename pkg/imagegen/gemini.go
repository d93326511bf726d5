package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// Generator produces an optional illustration for a text prompt. A nil byte
// slice with a nil error means the model returned no image; callers treat
// that as "post without a photo".
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Generate requests an image and returns the first inline payload found in
// the response, decoding a textual data URI if that is all the model sent.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
		if img, ok := decodeDataURI(part.Text); ok {
			return img, nil
		}
	}
	return nil, nil
}

// decodeDataURI extracts image bytes from a "data:image/...;base64,..." text.
func decodeDataURI(text string) ([]byte, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "data:image") {
		return nil, false
	}
	_, payload, found := strings.Cut(text, ",")
	if !found {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// FlattenPrompt renders a structured image prompt as a single delimited line,
// in key order, so the same prompt always serializes the same way.
func FlattenPrompt(prompt map[string]string) string {
	keys := make([]string, 0, len(prompt))
	for k := range prompt {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, prompt[k]))
	}
	return strings.Join(parts, " | ")
}
