// Package mirror orchestrates translation of a mirrored website tree:
// it enumerates cached pages, runs each through the validate /
// sanitize / select / translate / finalize pipeline, and commits
// results atomically so interrupted runs can resume without redoing or
// corrupting finished work.
package mirror

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/renameio"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ZaguanLabs/sitrans"
	"github.com/ZaguanLabs/sitrans/processor"
)

// CorruptPolicy decides what happens to a source file judged corrupt.
type CorruptPolicy string

const (
	// CorruptSkip leaves the corrupt file in place and moves on. Default:
	// deleting input data on a mirrored dataset is not something to do
	// by accident.
	CorruptSkip CorruptPolicy = "skip"
	// CorruptMove renames the file aside with a ".corrupt" suffix.
	CorruptMove CorruptPolicy = "move"
	// CorruptDelete removes the file from the source tree.
	CorruptDelete CorruptPolicy = "delete"
)

// Config holds configuration for a mirror run.
type Config struct {
	InputRoot     string        // Root of the mirrored site
	OutputRoot    string        // Mirrored output root; "" rewrites in place
	Ext           string        // Markup extension to match (default ".html")
	Workers       int           // Concurrent files (default 1)
	CorruptPolicy CorruptPolicy // Disposition of corrupt pages (default skip)
	DocumentMode  bool          // Whole-document translation when the backend supports it
	DryRun        bool          // Select and report nodes without translating or writing
}

// Runner drives one run over a mirrored site.
type Runner struct {
	cfg     Config
	gateway *sitrans.Gateway
	proc    *processor.HTMLProcessor

	mu    sync.Mutex
	stats sitrans.Stats
}

// RunnerOption is a functional option for configuring the Runner.
type RunnerOption func(*Runner)

// WithProcessor replaces the default HTML processor, e.g. to attach a
// language detector or a custom skip list.
func WithProcessor(p *processor.HTMLProcessor) RunnerOption {
	return func(r *Runner) {
		r.proc = p
	}
}

// NewRunner creates a Runner. The gateway's language pair was resolved
// at gateway construction, before any worker exists.
func NewRunner(cfg Config, gateway *sitrans.Gateway, opts ...RunnerOption) *Runner {
	if cfg.Ext == "" {
		cfg.Ext = ".html"
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.CorruptPolicy == "" {
		cfg.CorruptPolicy = CorruptSkip
	}

	r := &Runner{
		cfg:     cfg,
		gateway: gateway,
		proc:    processor.NewHTMLProcessor(gateway.Pair()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every markup file under the input root. A fatal
// translation failure (retry exhaustion) cancels the run: no new file
// starts, but files already committed stay committed.
func (r *Runner) Run(ctx context.Context) (sitrans.Stats, error) {
	files, err := r.discover()
	if err != nil {
		return sitrans.Stats{}, err
	}

	r.mu.Lock()
	r.stats = sitrans.Stats{Found: len(files)}
	r.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for _, path := range files {
		path := path
		g.Go(func() error {
			return r.processFile(gctx, path)
		})
	}

	err = g.Wait()

	stats := r.Stats()
	log.Info().
		Int("found", stats.Found).
		Int("translated", stats.Translated).
		Int("skipped", stats.Skipped).
		Int("corrupt", stats.Corrupt).
		Int("nodes", stats.Nodes).
		Msg("run finished")

	return stats, err
}

// Stats returns a snapshot of the run counters.
func (r *Runner) Stats() sitrans.Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// add mutates the run counters under the lock. Workers share one Stats.
func (r *Runner) add(fn func(*sitrans.Stats)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.stats)
}

// discover walks the input root collecting files with the configured
// extension, in lexical walk order.
func (r *Runner) discover() ([]string, error) {
	var files []string
	err := filepath.WalkDir(r.cfg.InputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A missing or unreadable root is a configuration error.
			// Anything below it is skipped like an unreadable file.
			if path == r.cfg.InputRoot {
				return err
			}
			log.Warn().Str("path", path).Err(err).Msg("unreadable, skipping")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), r.cfg.Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// inPlace reports whether the run rewrites sources in place.
func (r *Runner) inPlace() bool {
	return r.cfg.OutputRoot == "" || r.cfg.OutputRoot == r.cfg.InputRoot
}

// targetPath maps an input file to its output path, preserving the
// relative location under the output root.
func (r *Runner) targetPath(path string) (string, error) {
	if r.inPlace() {
		return path, nil
	}
	rel, err := filepath.Rel(r.cfg.InputRoot, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.cfg.OutputRoot, rel), nil
}

// processFile runs the full pipeline for one file. Corrupt input and
// read failures are logged and absorbed; translation and write failures
// propagate and end the run.
func (r *Runner) processFile(ctx context.Context, path string) error {
	// A fatal error elsewhere stops new work from starting.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	target, err := r.targetPath(path)
	if err != nil {
		return err
	}

	// Resumability: an existing target is proof the file was already
	// translated. Never overwrite it. In-place runs rely on the
	// selector's already-translated guard instead.
	if !r.inPlace() {
		if _, err := os.Stat(target); err == nil {
			log.Debug().Str("file", path).Msg("target exists, skipping")
			r.add(func(s *sitrans.Stats) { s.Skipped++ })
			return nil
		}
	}

	raw, err := os.ReadFile(path) // #nosec G304 - paths come from walking the configured root
	if err != nil {
		log.Warn().Str("file", path).Err(err).Msg("unreadable, skipping")
		r.add(func(s *sitrans.Stats) { s.Corrupt++ })
		return nil
	}

	if verdict := sitrans.Validate(raw); !verdict.OK {
		r.disposeCorrupt(path, verdict.Reason)
		return nil
	}

	cleaned := sitrans.StripComments(string(raw))

	var out string
	var nodeCount int

	if r.cfg.DocumentMode && r.gateway.SupportsDocuments() {
		out, err = r.translateDocument(ctx, cleaned)
	} else {
		out, nodeCount, err = r.translateFragments(ctx, path, cleaned)
	}
	if err != nil {
		return err
	}
	if out == "" {
		// Dry run or absorbed extraction failure; nothing to commit.
		return nil
	}

	if err := commit(target, out); err != nil {
		log.Error().Str("file", path).Err(err).Msg("write failed")
		return err
	}

	r.add(func(s *sitrans.Stats) {
		s.Translated++
		s.Nodes += nodeCount
	})
	log.Info().Str("file", path).Str("target", target).Int("nodes", nodeCount).Msg("translated")
	return nil
}

// translateDocument runs whole-document mode.
func (r *Runner) translateDocument(ctx context.Context, cleaned string) (string, error) {
	if r.cfg.DryRun {
		return "", nil
	}

	translated, err := r.gateway.TranslateDocument(ctx, cleaned)
	if err != nil {
		return "", err
	}
	return processor.Finalize(translated, r.gateway.Pair())
}

// translateFragments runs per-node mode: select, translate the batch,
// apply by node identity, finalize.
func (r *Runner) translateFragments(ctx context.Context, path, cleaned string) (string, int, error) {
	page, nodes, err := r.proc.Extract(cleaned)
	if err != nil {
		// Validated markup that still fails the processor parse is
		// treated like corruption, not a run failure.
		log.Warn().Str("file", path).Err(err).Msg("extraction failed, skipping")
		r.add(func(s *sitrans.Stats) { s.Corrupt++ })
		return "", 0, nil
	}

	if r.cfg.DryRun {
		for _, node := range nodes {
			log.Info().Str("file", path).Str("tag", node.ParentTag).Str("attr", node.Attr).Str("text", node.Text).Msg("would translate")
		}
		r.add(func(s *sitrans.Stats) { s.Nodes += len(nodes) })
		return "", 0, nil
	}

	texts := make([]string, len(nodes))
	for i, node := range nodes {
		texts[i] = node.Text
	}

	results, err := r.gateway.Translate(ctx, texts)
	if err != nil {
		return "", 0, err
	}

	translations := make(map[string]string, len(nodes))
	for i, node := range nodes {
		translations[node.ID] = results[i]
	}

	applied, err := r.proc.Apply(page, translations)
	if err != nil {
		return "", 0, err
	}

	out, err := processor.Finalize(applied, r.gateway.Pair())
	if err != nil {
		return "", 0, err
	}
	return out, len(nodes), nil
}

// disposeCorrupt applies the configured policy to a corrupt source file.
func (r *Runner) disposeCorrupt(path string, reason sitrans.CorruptReason) {
	event := log.Warn().Str("file", path).Str("reason", string(reason))

	switch r.cfg.CorruptPolicy {
	case CorruptDelete:
		if err := os.Remove(path); err != nil {
			event.Err(err).Msg("corrupt page, delete failed")
		} else {
			event.Msg("corrupt page, deleted")
		}
	case CorruptMove:
		if err := os.Rename(path, path+".corrupt"); err != nil {
			event.Err(err).Msg("corrupt page, move failed")
		} else {
			event.Msg("corrupt page, moved aside")
		}
	default:
		event.Msg("corrupt page, skipped")
	}

	r.add(func(s *sitrans.Stats) { s.Corrupt++ })
}

// commit atomically writes the finalized page to its target path. This
// is the single commit point: a file is done only once this succeeds,
// and a crash mid-write leaves either the old state or nothing, never a
// half-written page.
func commit(target, content string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(target, []byte(content), 0o644)
}

// IsFatal reports whether the run ended on retry exhaustion, the
// stop-the-world condition.
func IsFatal(err error) bool {
	var exhausted *sitrans.RetryExhaustedError
	return errors.As(err, &exhausted)
}
