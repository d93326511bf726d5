package llm

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"summary":"test"}`,
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"summary\":\"test\"}\n```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"summary\":\"test\"}\n```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "extracts object from surrounding prose",
			input: `Here you go: {"summary":"test"} hope that helps!`,
			want:  `{"summary":"test"}`,
		},
		{
			name:  "no braces left untouched",
			input: "just some text",
			want:  "just some text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResult(t *testing.T) {
	res, err := parseResult(`{"summary":"Bitcoin reached a new high.","caption":"BTC ATH","image_prompt":{"scene":"bull market"}}`)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Bitcoin reached a new high.", res.Summary)
	assert.Equal(t, "BTC ATH", res.Caption)
	assert.Equal(t, "bull market", res.ImagePrompt["scene"])
}

func TestParseResultExtractsEmbeddedJSON(t *testing.T) {
	res, err := parseResult("Sure! {\"summary\":\"s\",\"caption\":\"c\",\"image_prompt\":{\"scene\":\"x\"}} Done.")
	assert.Equal(t, nil, err)
	assert.Equal(t, "s", res.Summary)
}

func TestParseResultReturnsRawContentError(t *testing.T) {
	raw := "the model rambled with no JSON at all"
	_, err := parseResult(raw)

	var rawErr *RawContentError
	if !errors.As(err, &rawErr) {
		t.Fatalf("expected RawContentError, got %v", err)
	}
	assert.Equal(t, raw, rawErr.Content)
}
