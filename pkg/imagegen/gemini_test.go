package imagegen

import (
	"encoding/base64"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestFlattenPrompt(t *testing.T) {
	prompt := map[string]string{
		"style": "flat vector",
		"scene": "bull market",
	}
	assert.Equal(t, "scene: bull market | style: flat vector", FlattenPrompt(prompt))
}

func TestFlattenPromptSingleKey(t *testing.T) {
	assert.Equal(t, "scene: BTC hits new high", FlattenPrompt(map[string]string{"scene": "BTC hits new high"}))
}

func TestDecodeDataURI(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	got, ok := decodeDataURI(uri)
	assert.Equal(t, true, ok)
	assert.Equal(t, payload, got)
}

func TestDecodeDataURIRejectsOtherText(t *testing.T) {
	tests := []string{
		"",
		"plain text",
		"data:image/png;base64",       // no comma
		"data:image/png;base64,!!!!!", // invalid base64
	}
	for _, input := range tests {
		if _, ok := decodeDataURI(input); ok {
			t.Errorf("decodeDataURI(%q) unexpectedly succeeded", input)
		}
	}
}
