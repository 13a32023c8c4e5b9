// Package main implements the resume_composer CLI for laying out resumes
// and exporting them as print-ready PDFs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "resume_composer",
		Short: "Resume layout and PDF export",
		Long: `Resume Composer lays a structured resume out on fixed-size pages using one of the built-in templates, previews it as HTML, and exports it as a PDF.

Configuration can be loaded from a JSON or YAML file using --config and from RESUME_* environment variables. Command-line flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed debug information")

	cmd.AddCommand(
		newComposeCmd(opts),
		newPreviewCmd(opts),
		newExportCmd(opts),
		newTemplatesCmd(opts),
		newValidateCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
