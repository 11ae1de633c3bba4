package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/tsgonest/oasts/internal/buildcache"
	"github.com/tsgonest/oasts/internal/config"
	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/generate"
	"github.com/tsgonest/oasts/internal/loader"
)

var (
	errStale       = errors.New("output is out of date")
	errDiagnostics = errors.New("generation reported errors")
	errNoInput     = errors.New("no input document: pass a path or set input in oasts.config.yaml")
)

type app struct {
	opts   runOptions
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

func newApp(opts runOptions, stdout, stderr io.Writer) *app {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	return &app{
		opts:   opts,
		stdout: stdout,
		stderr: stderr,
		log:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
}

// runGenerate is the root command: generate once, check, or watch.
func runGenerate(ctx context.Context, opts runOptions, stdout, stderr io.Writer) error {
	a := newApp(opts, stdout, stderr)

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if opts.watch {
		return a.watch(ctx, cfg)
	}
	return a.once(ctx, cfg)
}

// loadConfig merges the config file, environment and flags.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.opts.configPath, "")
	if err != nil {
		return nil, err
	}
	if used := config.FileUsed(a.opts.configPath, ""); used != "" {
		a.log.Debug("loaded config", "path", used)
	}

	if a.opts.input != "" {
		cfg.Input = a.opts.input
	}
	if a.opts.output != "" {
		cfg.Output = a.opts.output
	}
	if cfg.Input == "" {
		return nil, errNoInput
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	for _, w := range cfg.ValidateDetailed().Warnings {
		a.log.Warn("config", "warning", w)
	}
	return cfg, nil
}

// once runs a single generation (or check) pass.
func (a *app) once(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	a.log.Debug("read input", "path", cfg.Input, "size", humanize.Bytes(uint64(len(data))))

	inputHash := buildcache.HashBytes(data)
	configHash := cfg.Fingerprint()
	cachePath := buildcache.CachePath(cfg.Output)
	useCache := !a.opts.noCache && !a.opts.check
	if useCache && buildcache.Load(cachePath).IsValid(inputHash, configHash, cfg.Output) {
		a.status(color.FgCyan, "%s is up to date (cached)\n", cfg.Output)
		return nil
	}

	diags := diagnostic.NewCollector(cfg.Strict, cfg.Quiet)
	doc, err := loader.LoadBytes(data, loader.FormatFromPath(cfg.Input), diags)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.Input, err)
	}
	a.log.Debug("loaded document", "dialect", doc.Dialect, "version", doc.SpecVersion, "schemas", len(doc.Schemas))

	out, err := generate.Generate(ctx, doc, generate.Options{
		Transform: cfg.TransformOptions(diags),
		Source:    filepath.Base(cfg.Input),
	})
	if err != nil {
		return err
	}

	a.report(diags)
	if diags.HasErrors() {
		return errDiagnostics
	}

	if a.opts.check {
		return a.check(cfg.Output, out)
	}

	changed, err := generate.WriteFile(cfg.Output, out)
	if err != nil {
		return err
	}
	if useCache {
		if err := buildcache.Save(cachePath, buildcache.New(inputHash, configHash, cfg.Output, out)); err != nil {
			a.log.Warn("could not save build cache", "path", cachePath, "error", err)
		}
	} else if a.opts.noCache {
		buildcache.Delete(cachePath)
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	if changed {
		a.status(color.FgGreen, "wrote %s: %d types, %s in %s\n",
			cfg.Output, len(doc.Schemas), humanize.Bytes(uint64(len(out))), elapsed)
	} else {
		a.status(color.FgCyan, "%s unchanged (%d types) in %s\n", cfg.Output, len(doc.Schemas), elapsed)
	}
	return nil
}

// check compares the file on disk with freshly generated content.
func (a *app) check(path, want string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if string(existing) == want {
		a.status(color.FgGreen, "%s is up to date\n", path)
		return nil
	}

	a.status(color.FgRed, "%s is out of date; run oasts to regenerate\n", path)
	writeDiff(a.stdout, lineDiff(string(existing), want))
	return errStale
}

// report prints every diagnostic to stderr and logs the summary.
func (a *app) report(diags *diagnostic.Collector) {
	if out := diags.FormatAll(); out != "" {
		c := color.New(color.FgYellow)
		if diags.HasErrors() {
			c = color.New(color.FgRed)
		}
		c.Fprint(a.stderr, out)
	}
	a.log.Debug("diagnostics", "summary", diags.Summary())
}

func (a *app) status(attr color.Attribute, format string, args ...any) {
	color.New(attr).Fprintf(a.stdout, format, args...)
}
