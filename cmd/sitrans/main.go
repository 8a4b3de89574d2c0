// Command sitrans translates a mirrored website tree between languages.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ZaguanLabs/sitrans"
	"github.com/ZaguanLabs/sitrans/cache"
	"github.com/ZaguanLabs/sitrans/mirror"
	"github.com/ZaguanLabs/sitrans/provider"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// fileConfig mirrors the flags for users who prefer a YAML file. Flags
// given on the command line win over file values.
type fileConfig struct {
	InputRoot         string `yaml:"input_root"`
	OutputRoot        string `yaml:"output_root"`
	Source            string `yaml:"source"`
	Target            string `yaml:"target"`
	Provider          string `yaml:"provider"`
	Model             string `yaml:"model"`
	APIKey            string `yaml:"api_key"`
	Workers           int    `yaml:"workers"`
	CorruptPolicy     string `yaml:"corrupt_policy"`
	DocumentMode      bool   `yaml:"document_mode"`
	MaxAttempts       int    `yaml:"max_attempts"`
	BackoffSeconds    int    `yaml:"backoff_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	Memory            string `yaml:"memory"`
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sitrans", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML config file (flags override it)")
	inputRoot := fs.String("input", "", "Root directory of the mirrored site")
	outputRoot := fs.String("output", "", "Output root (default: rewrite in place)")
	sourceLang := fs.String("source", "en", "Source language code")
	targetLang := fs.String("lang", "", "Target language code (e.g., hi, es_ES)")
	providerName := fs.String("provider", "google", "Translation backend: google or openai")
	model := fs.String("model", "", "Model for the openai backend")
	apiKey := fs.String("api-key", "", "API key for the openai backend (default: OPENAI_API_KEY env)")
	workers := fs.Int("workers", 1, "Concurrent files")
	corruptPolicy := fs.String("corrupt", "skip", "Corrupt page disposition: skip, move, or delete")
	documentMode := fs.Bool("document", false, "Translate whole documents in one backend call")
	maxAttempts := fs.Int("max-attempts", 5, "Translation attempts before giving up")
	backoff := fs.Int("backoff", 3, "Seconds between translation attempts")
	rpm := fs.Int("rpm", 0, "Backend requests per minute (0 = unlimited)")
	memoryPath := fs.String("memory", "", "Translation memory file (off by default)")
	dryRun := fs.Bool("dry-run", false, "List translatable nodes without calling the backend")
	verbose := fs.Bool("verbose", false, "Debug logging")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", sitrans.Name, sitrans.FullVersion())
		return nil
	}

	setupLogging(stderr, *verbose)

	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		applyConfig(fs, cfg, inputRoot, outputRoot, sourceLang, targetLang,
			providerName, model, apiKey, workers, corruptPolicy, documentMode,
			maxAttempts, backoff, rpm, memoryPath)
	}

	if *inputRoot == "" {
		fs.Usage()
		return fmt.Errorf("--input is required")
	}
	if *targetLang == "" {
		fs.Usage()
		return fmt.Errorf("--lang is required")
	}

	p, err := buildProvider(*providerName, *model, *apiKey, *rpm)
	if err != nil {
		return err
	}

	opts := []sitrans.GatewayOption{
		sitrans.WithRetryConfig(sitrans.RetryConfig{
			MaxAttempts: *maxAttempts,
			Backoff:     time.Duration(*backoff) * time.Second,
		}),
	}

	var memory *cache.FileMemory
	if *memoryPath != "" {
		memory, err = cache.NewFileMemory(*memoryPath, *sourceLang+"->"+*targetLang)
		if err != nil {
			return err
		}
		opts = append(opts, sitrans.WithCache(memory))
	}

	ctx := context.Background()
	gateway, err := sitrans.NewGateway(ctx,
		sitrans.LanguagePair{Source: *sourceLang, Target: *targetLang}, p, opts...)
	if err != nil {
		return err
	}

	runner := mirror.NewRunner(mirror.Config{
		InputRoot:     *inputRoot,
		OutputRoot:    *outputRoot,
		Workers:       *workers,
		CorruptPolicy: mirror.CorruptPolicy(*corruptPolicy),
		DocumentMode:  *documentMode,
		DryRun:        *dryRun,
	}, gateway)

	stats, err := runner.Run(ctx)

	if memory != nil {
		if saveErr := memory.Save(); saveErr != nil {
			log.Warn().Err(saveErr).Msg("saving translation memory failed")
		}
	}

	if err != nil {
		if mirror.IsFatal(err) {
			return fmt.Errorf("maximum retries reached, aborting run: %w", err)
		}
		return err
	}

	fmt.Fprintf(stdout, "translated %d of %d files (%d nodes), skipped %d, corrupt %d\n",
		stats.Translated, stats.Found, stats.Nodes, stats.Skipped, stats.Corrupt)
	return nil
}

// setupLogging wires zerolog: pretty console output on a TTY, JSON
// otherwise.
func setupLogging(stderr io.Writer, verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if f, ok := stderr.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: f})
	} else {
		log.Logger = log.Output(stderr)
	}
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// applyConfig fills in flag values from the config file for flags the
// user did not set on the command line.
func applyConfig(fs *flag.FlagSet, cfg *fileConfig,
	inputRoot, outputRoot, sourceLang, targetLang, providerName, model, apiKey *string,
	workers *int, corruptPolicy *string, documentMode *bool,
	maxAttempts, backoff, rpm *int, memoryPath *string,
) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	pickStr := func(name string, dst *string, val string) {
		if !set[name] && val != "" {
			*dst = val
		}
	}
	pickInt := func(name string, dst *int, val int) {
		if !set[name] && val != 0 {
			*dst = val
		}
	}

	pickStr("input", inputRoot, cfg.InputRoot)
	pickStr("output", outputRoot, cfg.OutputRoot)
	pickStr("source", sourceLang, cfg.Source)
	pickStr("lang", targetLang, cfg.Target)
	pickStr("provider", providerName, cfg.Provider)
	pickStr("model", model, cfg.Model)
	pickStr("api-key", apiKey, cfg.APIKey)
	pickStr("corrupt", corruptPolicy, cfg.CorruptPolicy)
	pickStr("memory", memoryPath, cfg.Memory)
	pickInt("workers", workers, cfg.Workers)
	pickInt("max-attempts", maxAttempts, cfg.MaxAttempts)
	pickInt("backoff", backoff, cfg.BackoffSeconds)
	pickInt("rpm", rpm, cfg.RequestsPerMinute)
	if !set["document"] && cfg.DocumentMode {
		*documentMode = true
	}
}

// buildProvider constructs the chosen backend, rate limited when asked.
func buildProvider(name, model, apiKey string, rpm int) (sitrans.Provider, error) {
	var p sitrans.Provider

	switch strings.ToLower(name) {
	case "google":
		p = provider.NewGoogleProvider(provider.GoogleConfig{})
	case "openai":
		key := apiKey
		if key == "" {
			key = os.Getenv("OPENAI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("openai backend requires --api-key or OPENAI_API_KEY env")
		}
		p = provider.NewOpenAIProvider(provider.OpenAIConfig{APIKey: key, Model: model})
	default:
		return nil, fmt.Errorf("unknown provider %q (want google or openai)", name)
	}

	if rpm > 0 {
		p = sitrans.NewRateLimitedProvider(p, sitrans.RateLimitConfig{RequestsPerMinute: rpm})
	}
	return p, nil
}
