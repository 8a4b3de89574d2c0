package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaguanLabs/sitrans"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"--version"}, &stdout, &stderr); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(stdout.String(), "sitrans") {
		t.Errorf("Expected version output, got %q", stdout.String())
	}
}

func TestRun_RequiresInput(t *testing.T) {
	err := run([]string{"--lang", "hi"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "--input is required") {
		t.Errorf("Expected missing input error, got: %v", err)
	}
}

func TestRun_RequiresTargetLang(t *testing.T) {
	err := run([]string{"--input", t.TempDir()}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "--lang is required") {
		t.Errorf("Expected missing lang error, got: %v", err)
	}
}

func TestRun_UnknownProvider(t *testing.T) {
	err := run([]string{"--input", t.TempDir(), "--lang", "hi", "--provider", "babelfish"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("Expected unknown provider error, got: %v", err)
	}
}

func TestRun_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	err := run([]string{"--input", t.TempDir(), "--lang", "hi", "--provider", "openai"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("Expected missing key error, got: %v", err)
	}
}

func TestRun_BadFlag(t *testing.T) {
	if err := run([]string{"--no-such-flag"}, io.Discard, io.Discard); err == nil {
		t.Error("Expected flag parse error")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitrans.yaml")
	content := `input_root: /srv/mirror
target: hi
workers: 4
document_mode: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.InputRoot != "/srv/mirror" || cfg.Target != "hi" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.Workers != 4 || !cfg.DocumentMode {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitrans.yaml")
	if err := os.WriteFile(path, []byte("input_root: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("Expected parse error for invalid YAML")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestApplyConfig_FlagsWin(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	inputRoot := fs.String("input", "", "")
	outputRoot := fs.String("output", "", "")
	sourceLang := fs.String("source", "en", "")
	targetLang := fs.String("lang", "", "")
	providerName := fs.String("provider", "google", "")
	model := fs.String("model", "", "")
	apiKey := fs.String("api-key", "", "")
	workers := fs.Int("workers", 1, "")
	corruptPolicy := fs.String("corrupt", "skip", "")
	documentMode := fs.Bool("document", false, "")
	maxAttempts := fs.Int("max-attempts", 5, "")
	backoff := fs.Int("backoff", 3, "")
	rpm := fs.Int("rpm", 0, "")
	memoryPath := fs.String("memory", "", "")

	if err := fs.Parse([]string{"--workers", "8", "--lang", "es"}); err != nil {
		t.Fatal(err)
	}

	cfg := &fileConfig{
		InputRoot: "/srv/mirror",
		Target:    "hi",
		Workers:   2,
	}
	applyConfig(fs, cfg, inputRoot, outputRoot, sourceLang, targetLang,
		providerName, model, apiKey, workers, corruptPolicy, documentMode,
		maxAttempts, backoff, rpm, memoryPath)

	if *inputRoot != "/srv/mirror" {
		t.Errorf("Expected file value for unset flag, got %q", *inputRoot)
	}
	if *targetLang != "es" {
		t.Errorf("Expected command-line value to win, got %q", *targetLang)
	}
	if *workers != 8 {
		t.Errorf("Expected command-line value to win, got %d", *workers)
	}
}

func TestBuildProvider_RateLimited(t *testing.T) {
	p, err := buildProvider("google", "", "", 60)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, ok := p.(*sitrans.RateLimitedProvider); !ok {
		t.Errorf("Expected rate limited wrapper, got %T", p)
	}
}
