package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-composer/internal/config"
	"github.com/jonathan/resume-composer/internal/observability"
	"github.com/jonathan/resume-composer/internal/pipeline"
	"github.com/jonathan/resume-composer/internal/schemas"
	"github.com/jonathan/resume-composer/internal/templates"
)

// layoutFlags are the composition flags shared by compose, preview, export
// and validate.
type layoutFlags struct {
	template string
	pageSize string
	atsSafe  bool
	maxPages int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Template identifier (default "+templates.DefaultTemplateID+")")
	cmd.Flags().StringVar(&f.pageSize, "page-size", "", "Page size: letter or a4 (default letter)")
	cmd.Flags().BoolVar(&f.atsSafe, "ats-safe", false, "Drop decorative fills for applicant tracking systems")
	cmd.Flags().IntVar(&f.maxPages, "max-pages", 0, "Page limit for layout checks (0 disables)")
}

// loadSettings merges the config file, environment and explicitly set
// flags, in increasing precedence.
func loadSettings(cmd *cobra.Command, root *rootOptions, lf *layoutFlags) (config.Config, error) {
	loaded, err := config.Load(root.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := *loaded
	if root.verbose && root.configPath != "" {
		log.Printf("[config] Loaded config from: %s", root.configPath)
	}

	flags := cmd.Flags()
	if lf != nil {
		if flags.Changed("template") {
			cfg.Template = lf.template
		}
		if flags.Changed("page-size") {
			cfg.PageSize = lf.pageSize
		}
		if flags.Changed("ats-safe") {
			cfg.ATSSafe = lf.atsSafe
		}
		if flags.Changed("max-pages") {
			cfg.MaxPages = lf.maxPages
		}
	}
	if flags.Changed("verbose") {
		cfg.Verbose = root.verbose
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// pipelineOptions converts settings into composition options. Verbose
// settings report progress on the command's error stream.
func pipelineOptions(cmd *cobra.Command, cfg config.Config) (*pipeline.Options, error) {
	size, err := templates.PageSizeByName(cfg.PageSize)
	if err != nil {
		return nil, err
	}
	opts := &pipeline.Options{PageSize: size, ATSSafe: cfg.ATSSafe}
	if cfg.Verbose {
		errOut := cmd.ErrOrStderr()
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(errOut, "[%s] %s\n", event.Step, event.Message)
		}
	}
	return opts, nil
}

// composeFile loads, validates and composes one resume file.
func composeFile(cmd *cobra.Command, cfg config.Config, path string) (*pipeline.Composition, error) {
	resume, err := schemas.LoadResume(path)
	if err != nil {
		return nil, err
	}
	opts, err := pipelineOptions(cmd, cfg)
	if err != nil {
		return nil, err
	}

	c := pipeline.Compose(*resume, cfg.Template, opts)
	printComposition(cmd, cfg, c)
	return c, nil
}

func printComposition(cmd *cobra.Command, cfg config.Config, c *pipeline.Composition) {
	if !cfg.Verbose {
		for _, w := range c.WarningMessages() {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
		}
		return
	}
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	printer.PrintLayout(c.Layout)
	printer.PrintPages(c.Layout, c.Pages)
	printer.PrintWarnings(c.Warnings)
}
