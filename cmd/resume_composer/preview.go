package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-composer/internal/rendering"
)

type previewOptions struct {
	layoutFlags
	input        string
	output       string
	templatePath string
}

func newPreviewCmd(root *rootOptions) *cobra.Command {
	opts := &previewOptions{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a resume as an HTML preview",
		Long:  "Lays a resume out and writes the pages as a standalone HTML document using the same geometry as the PDF export.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, root, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.input, "in", "i", "", "Path to resume JSON file (required)")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "Path to output HTML file (required)")
	cmd.Flags().StringVar(&opts.templatePath, "preview-template", "", "Path to a custom HTML preview template")

	if err := cmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := cmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	return cmd
}

func runPreview(cmd *cobra.Command, root *rootOptions, opts *previewOptions) error {
	cfg, err := loadSettings(cmd, root, &opts.layoutFlags)
	if err != nil {
		return err
	}

	renderer := rendering.NewPreviewRenderer()
	if opts.templatePath != "" {
		renderer, err = rendering.LoadPreviewRenderer(opts.templatePath)
		if err != nil {
			return err
		}
	}

	c, err := composeFile(cmd, cfg, opts.input)
	if err != nil {
		return err
	}

	html, err := renderer.RenderString(c.Layout, c.Pages)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	if dir := filepath.Dir(opts.output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Preview: %s (%d page(s))\n", opts.output, len(c.Pages))
	return nil
}
