package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/observability"
	"github.com/jonathan/resume-composer/internal/schemas"
	"github.com/jonathan/resume-composer/internal/types"
	"github.com/jonathan/resume-composer/internal/validation"
)

type validateOptions struct {
	layoutFlags
	inputs []string
	pdf    string
	schema string
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate resumes and their layout",
		Long: `Checks each resume JSON file against the resume schema and field rules, then lays it out and checks page bounds, orphaned headings, line widths and the page limit.

With --schema, each resume must also satisfy an extra JSON Schema, such as house rules requiring contact details.

With --pdf, checks the page count of an exported document instead of or in addition to resume files.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, root, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringArrayVarP(&opts.inputs, "in", "i", nil, "Path to resume JSON file (repeatable)")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "Path to an exported PDF to check")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "Additional JSON Schema each resume must satisfy")
	return cmd
}

func runValidate(cmd *cobra.Command, root *rootOptions, opts *validateOptions) error {
	if len(opts.inputs) == 0 && opts.pdf == "" {
		return fmt.Errorf("nothing to validate: pass --in or --pdf")
	}
	cfg, err := loadSettings(cmd, root, &opts.layoutFlags)
	if err != nil {
		return err
	}

	var extra *schemas.Schema
	if opts.schema != "" {
		extra, err = schemas.CompileFile(opts.schema)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	failed := 0

	for _, path := range opts.inputs {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("resume file not found: %s", path)
		}
		if extra != nil {
			if err := extra.ValidateFile(path); err != nil {
				var schemaErr *schemas.ValidationError
				if !errors.As(err, &schemaErr) {
					return err
				}
				failed++
				_, _ = fmt.Fprintf(out, "✗ %s (%s)\n%v\n", path, extra.Name(), err)
				continue
			}
		}
		c, err := composeFile(cmd, cfg, path)
		if err != nil {
			var schemaErr *schemas.ValidationError
			var ruleErr *types.ValidationError
			if !errors.As(err, &schemaErr) && !errors.As(err, &ruleErr) {
				return err
			}
			failed++
			_, _ = fmt.Fprintf(out, "✗ %s\n%v\n", path, err)
			continue
		}

		violations := c.Violations(cfg.MaxPages, flow.NewPDFMeasurer())
		if len(violations.Violations) > 0 {
			printer.PrintViolations(violations)
		}
		if violations.HasErrors() {
			failed++
			_, _ = fmt.Fprintf(out, "✗ %s: %d page(s), layout errors\n", path, len(c.Pages))
			continue
		}
		_, _ = fmt.Fprintf(out, "✓ %s: %d page(s) with template %s\n", path, len(c.Pages), c.TemplateID)
	}

	if opts.pdf != "" {
		ok, err := validatePDF(cmd, opts.pdf, cfg.MaxPages)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("validation failed for %d file(s)", failed)
	}
	return nil
}

func validatePDF(cmd *cobra.Command, path string, maxPages int) (bool, error) {
	out := cmd.OutOrStdout()
	count, err := validation.CountPDFPages(cmd.Context(), path)
	if err != nil {
		return false, fmt.Errorf("failed to count pages: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read PDF: %w", err)
	}
	violations, err := validation.ValidateDocument(data, maxPages)
	if err != nil {
		_, _ = fmt.Fprintf(out, "✗ %s: %v\n", path, err)
		return false, nil
	}
	if violations.HasErrors() {
		observability.NewPrinter(out).PrintViolations(violations)
		_, _ = fmt.Fprintf(out, "✗ %s: %d page(s)\n", path, count)
		return false, nil
	}
	_, _ = fmt.Fprintf(out, "✓ %s: %d page(s)\n", path, count)
	return true, nil
}
