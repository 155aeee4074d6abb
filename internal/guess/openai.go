// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package guess

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"

	"github.com/sumergoconicio/openai-pdf-renamer/internal/httputil"
	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

// DefaultBaseURL is the API root used when the configuration names none.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultTextBudget caps the extracted text shipped with the prompt.
const DefaultTextBudget = 3000

// systemPrompt frames the task. The Unknown/Various markers it mandates are
// the same ones the reliability filter denylists.
const systemPrompt = "You are a librarian interested in the organization of knowledge. " +
	"You assist in renaming digital files to build a perfect library. " +
	"Only respond in JSON with fields: author, title, pubdate as strings. " +
	"Use spaces and not underscores between words within fields. " +
	"If unsure, print 'Various' for author or 'Unknown' for title. pubdate is a four-digit year."

// userPromptTmpl carries the document text and the expected answer shape.
var userPromptTmpl = template.Must(template.New("guess").Parse(
	`Given the following text, guess the probable author (with a preference for institutional acronyms over individuals), title, and publication year.
Strictly JSON: {"author": "", "title": "", "pubdate": ""}.
----
{{.Text}}
----`))

// OpenAIBackend issues one chat-completion request per document against an
// OpenAI-compatible endpoint. Network and service failures are returned as-is
// and are never retried; the caller treats them as a per-document failure.
type OpenAIBackend struct {
	Config types.GuessConfig
	Client *http.Client
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Guess sends the extracted text to the chat-completion endpoint and returns
// the raw model output. Empty text is a valid input: the model is still asked
// and will answer with the Unknown markers.
func (b *OpenAIBackend) Guess(ctx context.Context, text string) (Response, error) {
	prompt, err := renderPrompt(text, b.textBudget())
	if err != nil {
		return Response{}, fmt.Errorf("rendering prompt: %w", err)
	}

	maxTokens := b.Config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 128
	}
	temperature := b.Config.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	reqBody := chatRequest{
		Model:       b.Config.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	baseURL := b.Config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.Config.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Response{}, httputil.ErrorFromResponse(resp)
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return Response{}, fmt.Errorf("decoding completion response: %w", err)
	}

	if len(cResp.Choices) == 0 {
		return Response{}, fmt.Errorf("completion API returned no choices")
	}

	return Response{Content: cResp.Choices[0].Message.Content}, nil
}

func (b *OpenAIBackend) textBudget() int {
	if b.Config.TextBudget > 0 {
		return b.Config.TextBudget
	}
	return DefaultTextBudget
}

// renderPrompt executes the user prompt template, truncating text to budget.
func renderPrompt(text string, budget int) (string, error) {
	if len(text) > budget {
		text = text[:budget]
	}
	var buf bytes.Buffer
	if err := userPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
