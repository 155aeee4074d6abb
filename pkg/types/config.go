package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdf-renamer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for the chat-completion API.
type AIConfig struct {
	// Model is the model identifier (e.g. "gpt-4.1-mini").
	Model string `json:"model" yaml:"model"`

	// BaseURL is the API root of an OpenAI-compatible endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion size (default 128).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the sampling temperature (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// GuessConfig holds settings for the metadata guessing stage.
type GuessConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// MaxPages is the number of leading pages whose text feeds the prompt
	// (default 5).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// TextBudget is the maximum number of characters of extracted text sent
	// to the model (default 3000).
	TextBudget int `json:"text_budget" yaml:"text_budget"`
}

// RenameConfig holds settings for filename formatting and file mutation.
type RenameConfig struct {
	// Dir is the directory whose PDF files are processed.
	Dir string `json:"dir" yaml:"dir"`

	// RewriteMetadata enables rewriting the embedded Title, Author, and
	// CreationDate fields after a successful rename.
	RewriteMetadata bool `json:"rewrite_metadata" yaml:"rewrite_metadata"`

	// RequireYear makes the reliability verdict demand a usable year in
	// addition to title and author. When false an unknown year renders as
	// "Unknown" in the filename.
	RequireYear bool `json:"require_year" yaml:"require_year"`

	// MaxNameLength bounds the filename component before the ".pdf"
	// extension (default 128).
	MaxNameLength int `json:"max_name_length" yaml:"max_name_length"`

	// DryRun prints renaming decisions without touching any file.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Guess  GuessConfig  `json:"guess" yaml:"guess"`
	Rename RenameConfig `json:"rename" yaml:"rename"`
}
