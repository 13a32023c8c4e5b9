package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/observability"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/types"
)

// composeResult is the JSON written by the compose command
type composeResult struct {
	TemplateID string            `json:"templateId"`
	PageCount  int               `json:"pageCount"`
	Pages      []pagination.Page `json:"pages"`
	Warnings   []string          `json:"warnings"`
	Violations *types.Violations `json:"violations"`
}

type composeOptions struct {
	layoutFlags
	input  string
	output string
}

func newComposeCmd(root *rootOptions) *cobra.Command {
	opts := &composeOptions{}
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Lay a resume out on pages and print the pages as JSON",
		Long:  "Validates a resume JSON file, lays it out with the selected template and prints every page with its positioned blocks, warnings and layout check results.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompose(cmd, root, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.input, "in", "i", "", "Path to resume JSON file (required)")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := cmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	return cmd
}

func runCompose(cmd *cobra.Command, root *rootOptions, opts *composeOptions) error {
	cfg, err := loadSettings(cmd, root, &opts.layoutFlags)
	if err != nil {
		return err
	}

	c, err := composeFile(cmd, cfg, opts.input)
	if err != nil {
		return err
	}

	violations := c.Violations(cfg.MaxPages, flow.NewPDFMeasurer())
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintViolations(violations)
	}

	result := composeResult{
		TemplateID: c.TemplateID,
		PageCount:  len(c.Pages),
		Pages:      c.Pages,
		Warnings:   c.WarningMessages(),
		Violations: violations,
	}
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pages to JSON: %w", err)
	}

	if opts.output == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return err
	}

	if dir := filepath.Dir(opts.output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write pages to output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Composed %d page(s) with template %s\n", len(c.Pages), c.TemplateID)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", opts.output)
	return nil
}
