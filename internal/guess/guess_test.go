package guess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

// --- Normalize ---

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want types.GuessResult
	}{
		{
			name: "clean JSON",
			in:   `{"author": "J. Smith", "title": "The Great Work", "pubdate": "1998"}`,
			want: types.GuessResult{Title: "The Great Work", Author: "J. Smith", Year: "1998"},
		},
		{
			name: "code-fenced JSON",
			in:   "```json\n{\"author\": \"ACME\", \"title\": \"Widgets\", \"pubdate\": \"2020\"}\n```",
			want: types.GuessResult{Title: "Widgets", Author: "ACME", Year: "2020"},
		},
		{
			name: "JSON wrapped in prose",
			in:   "Here is the metadata you asked for:\n{\"author\": \"Jane Doe\", \"title\": \"On Things\", \"pubdate\": \"2011\"}\nHope this helps!",
			want: types.GuessResult{Title: "On Things", Author: "Jane Doe", Year: "2011"},
		},
		{
			name: "numeric year",
			in:   `{"author": "Org", "title": "Report", "pubdate": 2019}`,
			want: types.GuessResult{Title: "Report", Author: "Org", Year: "2019"},
		},
		{
			name: "year under alternate key",
			in:   `{"author": "Org", "title": "Report", "year": "2003"}`,
			want: types.GuessResult{Title: "Report", Author: "Org", Year: "2003"},
		},
		{
			name: "missing fields default to Unknown",
			in:   `{"title": "Orphan"}`,
			want: types.GuessResult{Title: "Orphan", Author: types.Unknown, Year: types.Unknown},
		},
		{
			name: "garbage year defaults to Unknown",
			in:   `{"author": "A", "title": "T", "pubdate": "circa 1850?"}`,
			want: types.GuessResult{Title: "T", Author: "A", Year: types.Unknown},
		},
		{
			name: "whitespace-only fields default to Unknown",
			in:   `{"author": "  ", "title": "T", "pubdate": ""}`,
			want: types.GuessResult{Title: "T", Author: types.Unknown, Year: types.Unknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(Response{Content: tt.in})
			if got.Title != tt.want.Title || got.Author != tt.want.Author || got.Year != tt.want.Year {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeFreeText(t *testing.T) {
	raw := "I could not determine the metadata for this document."
	got := Normalize(Response{Content: raw})

	if got.Title != types.Unknown || got.Author != types.Unknown || got.Year != types.Unknown {
		t.Errorf("Normalize() = %+v, want all fields Unknown", got)
	}
	if got.Raw != raw {
		t.Errorf("Raw = %q, want the original text preserved", got.Raw)
	}
}

func TestNormalizeEmptyContent(t *testing.T) {
	got := Normalize(Response{Content: ""})
	if got.Title != types.Unknown || got.Author != types.Unknown || got.Year != types.Unknown {
		t.Errorf("Normalize() = %+v, want a well-formed all-Unknown result", got)
	}
}

// --- OpenAIBackend ---

func TestOpenAIBackendGuess(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotReq)

		fmt.Fprint(w, `{"choices": [{"message": {"content": "{\"author\": \"A\", \"title\": \"T\", \"pubdate\": \"2001\"}"}}]}`)
	}))
	defer srv.Close()

	backend := &OpenAIBackend{
		Config: types.GuessConfig{
			AIConfig: types.AIConfig{Model: "test-model", BaseURL: srv.URL, APIKey: "test-key"},
		},
	}

	resp, err := backend.Guess(context.Background(), "some extracted text")
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want %q", gotPath, "/chat/completions")
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q, want %q", gotReq.Model, "test-model")
	}
	if gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %q, want %q", gotReq.ResponseFormat.Type, "json_object")
	}
	if len(gotReq.Messages) != 2 || !strings.Contains(gotReq.Messages[1].Content, "some extracted text") {
		t.Errorf("user message should carry the extracted text: %+v", gotReq.Messages)
	}

	g := Normalize(resp)
	if g.Title != "T" || g.Author != "A" || g.Year != "2001" {
		t.Errorf("normalized guess = %+v", g)
	}
}

func TestOpenAIBackendEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": [{"message": {"content": "{\"author\": \"Various\", \"title\": \"Unknown\", \"pubdate\": \"\"}"}}]}`)
	}))
	defer srv.Close()

	backend := &OpenAIBackend{
		Config: types.GuessConfig{AIConfig: types.AIConfig{Model: "m", BaseURL: srv.URL, APIKey: "k"}},
	}

	resp, err := backend.Guess(context.Background(), "")
	if err != nil {
		t.Fatalf("empty input must still produce a request and a result: %v", err)
	}

	g := Normalize(resp)
	if g.Author != "Various" || g.Title != "Unknown" || g.Year != types.Unknown {
		t.Errorf("normalized guess = %+v", g)
	}
}

func TestOpenAIBackendServiceErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	backend := &OpenAIBackend{
		Config: types.GuessConfig{AIConfig: types.AIConfig{Model: "m", BaseURL: srv.URL, APIKey: "k"}},
	}

	_, err := backend.Guess(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error for 429 response, got nil")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %q, want it to mention the status code", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (service errors are not retried)", calls)
	}
}

func TestOpenAIBackendNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer srv.Close()

	backend := &OpenAIBackend{
		Config: types.GuessConfig{AIConfig: types.AIConfig{Model: "m", BaseURL: srv.URL, APIKey: "k"}},
	}

	if _, err := backend.Guess(context.Background(), "text"); err == nil {
		t.Fatal("expected error for empty choices, got nil")
	}
}

// --- renderPrompt ---

func TestRenderPromptTruncates(t *testing.T) {
	prompt, err := renderPrompt("abcdefghijKLMNOP", 10)
	if err != nil {
		t.Fatalf("renderPrompt: %v", err)
	}
	if !strings.Contains(prompt, "abcdefghij") {
		t.Error("prompt should contain the budgeted text prefix")
	}
	if strings.Contains(prompt, "KLMNOP") {
		t.Error("prompt should not contain text beyond the budget")
	}
}

func TestRenderPromptShape(t *testing.T) {
	prompt, err := renderPrompt("leading page text", DefaultTextBudget)
	if err != nil {
		t.Fatalf("renderPrompt: %v", err)
	}
	if !strings.Contains(prompt, "leading page text") {
		t.Error("prompt should contain the document text")
	}
	if !strings.Contains(prompt, `"pubdate"`) {
		t.Error("prompt should name the expected JSON fields")
	}
}
