// Package guess asks a chat-completion model for the probable title, author,
// and publication year of a document, given its leading-page text, and
// normalizes whatever comes back into a GuessResult.
package guess

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

// Backend abstracts the chat-completion API so tests can supply a mock.
type Backend interface {
	Guess(ctx context.Context, text string) (Response, error)
}

// Response is the raw model output for one document.
type Response struct {
	Content string
}

// wireGuess mirrors the JSON object the prompt asks for. The year arrives as
// a string or a bare number depending on the model's mood, so both pubdate
// and year are captured raw.
type wireGuess struct {
	Author  string          `json:"author"`
	Title   string          `json:"title"`
	PubDate json.RawMessage `json:"pubdate"`
	Year    json.RawMessage `json:"year"`
}

// Normalize parses a model response into a GuessResult. Parsing is lenient:
// code fences and surrounding prose are stripped, a missing or malformed
// field degrades to the Unknown marker, and free text that contains no JSON
// object at all yields a fully-Unknown result carrying the raw text.
// Normalize never fails.
func Normalize(resp Response) types.GuessResult {
	raw := strings.TrimSpace(resp.Content)

	unknown := types.GuessResult{
		Title:  types.Unknown,
		Author: types.Unknown,
		Year:   types.Unknown,
		Raw:    raw,
	}

	body, ok := innerJSONObject(raw)
	if !ok {
		return unknown
	}

	var w wireGuess
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return unknown
	}

	return types.GuessResult{
		Title:  fieldOrUnknown(w.Title),
		Author: fieldOrUnknown(w.Author),
		Year:   yearOrUnknown(w.PubDate, w.Year),
	}
}

// innerJSONObject slices out the outermost {...} from text that may wrap the
// JSON in Markdown fences or commentary.
func innerJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func fieldOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Unknown
	}
	return s
}

// yearOrUnknown resolves the publication year from the first raw value that
// decodes to a plausible integer, as a string or as a number.
func yearOrUnknown(raws ...json.RawMessage) string {
	for _, raw := range raws {
		if len(raw) == 0 {
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			var n int
			if err := json.Unmarshal(raw, &n); err != nil {
				continue
			}
			s = strconv.Itoa(n)
		}

		y, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || y < 1 || y > 9999 {
			continue
		}
		return strconv.Itoa(y)
	}
	return types.Unknown
}
