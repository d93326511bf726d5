package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client: &client,
		model:  openai.ChatModelGPT4_1Mini,
	}
}

func (c *OpenAIClient) Summarize(ctx context.Context, in Input) (*Result, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(in)),
		},
		MaxTokens:   openai.Int(400),
		Temperature: openai.Float(0.2),
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return parseResult(resp.Choices[0].Message.Content)
}

// parseResult decodes the model output, tolerating fences and surrounding
// prose. Unparseable content comes back as a RawContentError carrying the
// raw text.
func parseResult(content string) (*Result, error) {
	cleaned := cleanJSONResponse(content)

	var parsed Result
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &RawContentError{Content: content}
	}
	return &parsed, nil
}
