package news

import (
	"bytes"
	"encoding/json"
)

// Article is the raw shape returned by the feed API. Fields beyond these are
// ignored.
type Article struct {
	ID      flexID `json:"id"`
	UUID    string `json:"uuid"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Body    string `json:"body"`
	Excerpt string `json:"excerpt"`
}

// Key returns the dedupe identifier, preferring id, then uuid, then url.
// An empty key means the article cannot be tracked and must be skipped.
func (a Article) Key() string {
	if a.ID != "" {
		return string(a.ID)
	}
	if a.UUID != "" {
		return a.UUID
	}
	return a.URL
}

// Headline returns the title, or a placeholder when the feed omitted one.
func (a Article) Headline() string {
	if a.Title == "" {
		return "Untitled"
	}
	return a.Title
}

// Snippet returns the body text (falling back to the excerpt field) capped
// at 1000 characters so summarizer prompts stay bounded.
func (a Article) Snippet() string {
	text := a.Body
	if text == "" {
		text = a.Excerpt
	}
	runes := []rune(text)
	if len(runes) > 1000 {
		return string(runes[:1000])
	}
	return text
}

// flexID accepts both string and numeric JSON ids; CryptoPanic serves numbers
// but other feed shapes use strings.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	*f = flexID(b)
	return nil
}
