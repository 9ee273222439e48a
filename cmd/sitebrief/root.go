package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/leofalp/sitebrief/core/brief"
	"github.com/leofalp/sitebrief/core/client/middleware"
	"github.com/leofalp/sitebrief/core/webpage"
	"github.com/leofalp/sitebrief/internal/config"
	"github.com/leofalp/sitebrief/providers/ai"
	"github.com/leofalp/sitebrief/providers/ai/openai"
)

const bannerWidth = 60

var (
	verbose      bool
	modelFlag    string
	markdownMode bool
	temperature  float64
	fetchTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "sitebrief",
	Short: "Turn live websites into short summaries and company brochures",
	Long: `sitebrief fetches web pages, strips them down to their readable text,
and asks an OpenAI-compatible model to write a short markdown summary
or a small company brochure built from the most relevant pages.

Configuration comes from the environment (or a .env file in the
working directory). OPENAI_API_KEY is required; OPENAI_API_BASE_URL
switches to any compatible endpoint.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log prompts and model replies")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "model to use (overrides SITEBRIEF_MODEL)")
	rootCmd.PersistentFlags().BoolVar(&markdownMode, "markdown", false, "convert page bodies to markdown instead of plain text")
	rootCmd.PersistentFlags().Float64Var(&temperature, "temperature", 0, "sampling temperature (0 uses the API default)")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "timeout", 0, "per-page fetch timeout (0 uses SITEBRIEF_FETCH_TIMEOUT)")

	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(brochureCmd)
}

// Execute runs the root command and exits non-zero on failure.
// Cobra already printed the error at that point.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func banner() string {
	return strings.Repeat("=", bannerWidth)
}

// newSpinner builds a stderr spinner so stdout carries only the result.
func newSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = message
	s.Writer = os.Stderr
	return s
}

func newLogger() *slog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return slog.New(handler)
}

// loadConfig reads the environment, rejects a missing API key before any
// network call, and logs the same key diagnostics on every command.
func loadConfig(logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	warnings := cfg.KeyWarnings()
	for _, warning := range warnings {
		logger.Warn(warning)
	}
	if len(warnings) == 0 {
		logger.Info("API key found and looks valid")
	}
	return cfg, nil
}

// buildGenerator wires the provider, the fetcher, and the logging
// middleware from the resolved configuration plus command-line overrides.
func buildGenerator(cfg *config.Config, logger *slog.Logger, maxDocumentChars int) (*brief.Generator, error) {
	provider := openai.New().WithAPIKey(cfg.APIKey)
	if cfg.BaseURL != "" {
		provider = provider.WithBaseURL(cfg.BaseURL)
	}

	model := cfg.Model
	if modelFlag != "" {
		model = modelFlag
	}

	timeout := cfg.FetchTimeout
	if fetchTimeout > 0 {
		timeout = fetchTimeout
	}

	fetcherOpts := []func(*webpage.FetcherOptions){
		webpage.WithUserAgent(cfg.UserAgent),
		webpage.WithTimeout(timeout),
	}
	if markdownMode {
		fetcherOpts = append(fetcherOpts, webpage.WithMarkdownText())
	}

	logLevel := middleware.LogLevelStandard
	if verbose {
		logLevel = middleware.LogLevelVerbose
	}

	if maxDocumentChars <= 0 {
		maxDocumentChars = cfg.MaxDocumentChars
	}

	opts := []func(*brief.GeneratorOptions){
		brief.WithModel(model),
		brief.WithFetcher(webpage.New(fetcherOpts...)),
		brief.WithLogger(logger),
		brief.WithMiddlewares(middleware.NewLoggingMiddleware(logger, logLevel,
			middleware.WithCostFunc(openai.CalculateCost))),
		brief.WithMaxDocumentChars(maxDocumentChars),
	}
	if temperature > 0 {
		opts = append(opts, brief.WithGenerationConfig(ai.GenerationConfig{
			Temperature: float32(temperature),
		}))
	}

	return brief.New(provider, opts...)
}
