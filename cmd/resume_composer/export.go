package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-composer/internal/config"
	"github.com/jonathan/resume-composer/internal/export"
	"github.com/jonathan/resume-composer/internal/observability"
	"github.com/jonathan/resume-composer/internal/pipeline"
	"github.com/jonathan/resume-composer/internal/rendering"
	"github.com/jonathan/resume-composer/internal/schemas"
)

type exportOptions struct {
	layoutFlags
	inputs      []string
	outputDir   string
	mode        string
	chromePath  string
	concurrency int
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one or more resumes as PDF",
		Long: `Lays out each resume and writes it as <Name>_Resume.pdf in the output directory.

Vector mode draws text with the PDF writer. Raster mode screenshots the HTML preview in headless Chrome and embeds one image per page. Interrupting the command leaves no partial files behind.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, root, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringArrayVarP(&opts.inputs, "in", "i", nil, "Path to resume JSON file (required, repeatable)")
	cmd.Flags().StringVarP(&opts.outputDir, "out", "o", "", "Output directory (default from config, else current directory)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Export mode: vector or raster (default vector)")
	cmd.Flags().StringVar(&opts.chromePath, "chrome-path", "", "Chrome or Chromium binary for raster mode")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "Resumes composed in parallel")

	if err := cmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	return cmd
}

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions) error {
	cfg, err := loadSettings(cmd, root, &opts.layoutFlags)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("mode") {
		cfg.Mode = opts.mode
	}
	if flags.Changed("chrome-path") {
		cfg.ChromePath = opts.chromePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	mode, err := export.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs := make([]pipeline.Input, 0, len(opts.inputs))
	for _, path := range opts.inputs {
		resume, err := schemas.LoadResume(path)
		if err != nil {
			return err
		}
		inputs = append(inputs, pipeline.Input{Resume: *resume, TemplateID: cfg.Template})
	}

	composeOpts, err := pipelineOptions(cmd, cfg)
	if err != nil {
		return err
	}
	comps, err := pipeline.ComposeAll(ctx, inputs, opts.concurrency, composeOpts)
	if err != nil {
		return fmt.Errorf("failed to compose resumes: %w", err)
	}

	service := export.NewServiceWithExporters(cfg.NewLogger(cmd.ErrOrStderr()), exporters(cfg))
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	for i, c := range comps {
		printComposition(cmd, cfg, c)

		path, doc, err := exportOne(ctx, service, cfg, opts.inputs[i], c, mode)
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", opts.inputs[i], err)
		}
		if cfg.Verbose {
			printer.PrintDocument(doc, path)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d page(s))\n", path, doc.PageCount)
	}
	return nil
}

func exportOne(ctx context.Context, service *export.Service, cfg config.Config, key string, c *pipeline.Composition, mode export.Mode) (string, *rendering.Document, error) {
	if cfg.ExportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ExportTimeout)
		defer cancel()
	}

	doc, err := service.Export(ctx, key, c, mode)
	if err != nil {
		return "", nil, err
	}
	path, err := export.Save(ctx, doc, cfg.OutputDir)
	if err != nil {
		return "", nil, err
	}
	return path, doc, nil
}

func exporters(cfg config.Config) map[export.Mode]rendering.Exporter {
	browser := rendering.NewBrowserExporter()
	browser.ChromePath = cfg.ChromePath
	browser.Timeout = cfg.ExportTimeout
	browser.Scale = cfg.RasterScale
	browser.Verbose = cfg.Verbose
	return map[export.Mode]rendering.Exporter{
		export.ModeVector: rendering.NewPDFExporter(),
		export.ModeRaster: browser,
	}
}
