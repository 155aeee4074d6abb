package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sumergoconicio/openai-pdf-renamer/internal/guess"
	"github.com/sumergoconicio/openai-pdf-renamer/internal/httputil"
	"github.com/sumergoconicio/openai-pdf-renamer/internal/pipeline"
	"github.com/sumergoconicio/openai-pdf-renamer/internal/secrets"
	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

var renameCmd = &cobra.Command{
	Use:   "rename [directory]",
	Short: "Rename every PDF in a directory from guessed metadata",
	Long: `Rename processes the directory's PDF files in lexicographic order. For each
file it extracts the leading pages' text, asks the model for author, title,
and publication year, and renames the file when the guess is usable. Target
names that collide with existing files or earlier renames in the same run get
a numeric suffix.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		cfg := types.PipelineConfig{
			Guess: types.GuessConfig{
				AIConfig: types.AIConfig{
					Model:       viper.GetString("guess.model"),
					BaseURL:     viper.GetString("guess.base_url"),
					APIKey:      viper.GetString("guess.api_key"),
					MaxTokens:   viper.GetInt("guess.max_tokens"),
					Temperature: viper.GetFloat64("guess.temperature"),
				},
				HTTPConfig: types.HTTPConfig{
					Timeout:   viper.GetDuration("guess.timeout"),
					UserAgent: "pdf-renamer/" + version,
				},
				MaxPages:   viper.GetInt("guess.max_pages"),
				TextBudget: viper.GetInt("guess.text_budget"),
			},
			Rename: types.RenameConfig{
				Dir:             dir,
				RewriteMetadata: viper.GetBool("rename.rewrite_metadata"),
				RequireYear:     viper.GetBool("rename.require_year"),
				MaxNameLength:   viper.GetInt("rename.max_name_length"),
				DryRun:          viper.GetBool("rename.dry_run"),
			},
		}

		if cfg.Guess.APIKey == "" {
			cfg.Guess.APIKey = secrets.APIKey(loadedSecrets, "openai-api-key", "OPENAI_API_KEY")
		}
		if cfg.Guess.APIKey == "" && !cfg.Rename.DryRun {
			return fmt.Errorf("no API key: set OPENAI_API_KEY, .secrets/openai-api-key, or guess.api_key")
		}

		backend := &guess.OpenAIBackend{
			Config: cfg.Guess,
			Client: httputil.NewClient(cfg.Guess.HTTPConfig),
		}

		summary, err := pipeline.Run(cmd.Context(), backend, cfg, os.Stdout)
		if err != nil {
			return err
		}

		fmt.Printf("renamed %d, skipped %d, failed %d (%d total)\n",
			summary.Renamed, summary.Skipped, summary.Failed, summary.Total())

		if report := viper.GetString("rename.report"); report != "" {
			if err := pipeline.WriteReport(report, summary); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
		}
		return nil
	},
}

func init() {
	renameCmd.Flags().String("model", "gpt-4.1-mini", "model identifier for metadata guessing")
	renameCmd.Flags().String("base-url", "", "OpenAI-compatible API root (default https://api.openai.com/v1)")
	renameCmd.Flags().Int("max-pages", 5, "leading pages to extract text from")
	renameCmd.Flags().Int("max-tokens", 128, "completion token cap")
	renameCmd.Flags().Float64("temperature", 0.3, "sampling temperature")
	renameCmd.Flags().Duration("timeout", httputil.DefaultTimeout, "per-request timeout")
	renameCmd.Flags().Int("text-budget", guess.DefaultTextBudget, "maximum characters of extracted text sent to the model")
	renameCmd.Flags().Bool("rewrite-metadata", true, "rewrite embedded Title/Author/CreationDate after renaming")
	renameCmd.Flags().Bool("require-year", false, "treat an unknown year as unreliable instead of renaming with an Unknown placeholder")
	renameCmd.Flags().Int("max-name-length", 128, "maximum filename length before the .pdf extension")
	renameCmd.Flags().Bool("dry-run", false, "print decisions without renaming or rewriting anything")
	renameCmd.Flags().String("report", "", "write a YAML per-file report to this path")

	viper.BindPFlag("guess.model", renameCmd.Flags().Lookup("model"))
	viper.BindPFlag("guess.base_url", renameCmd.Flags().Lookup("base-url"))
	viper.BindPFlag("guess.max_pages", renameCmd.Flags().Lookup("max-pages"))
	viper.BindPFlag("guess.max_tokens", renameCmd.Flags().Lookup("max-tokens"))
	viper.BindPFlag("guess.temperature", renameCmd.Flags().Lookup("temperature"))
	viper.BindPFlag("guess.timeout", renameCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("guess.text_budget", renameCmd.Flags().Lookup("text-budget"))
	viper.BindPFlag("rename.rewrite_metadata", renameCmd.Flags().Lookup("rewrite-metadata"))
	viper.BindPFlag("rename.require_year", renameCmd.Flags().Lookup("require-year"))
	viper.BindPFlag("rename.max_name_length", renameCmd.Flags().Lookup("max-name-length"))
	viper.BindPFlag("rename.dry_run", renameCmd.Flags().Lookup("dry-run"))
	viper.BindPFlag("rename.report", renameCmd.Flags().Lookup("report"))

	rootCmd.AddCommand(renameCmd)
}
