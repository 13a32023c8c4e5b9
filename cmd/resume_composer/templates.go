package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-composer/internal/templates"
)

func newTemplatesCmd(root *rootOptions) *cobra.Command {
	var (
		category string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(cmd, root, nil)
			if err != nil {
				return err
			}

			list := templates.Default().ByCategory(category)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tLAYOUT\tATS\tFEATURES")
			for _, t := range list {
				id := t.ID
				if id == cfg.Template {
					id += " *"
				}
				ats := ""
				if t.ATSOptimized {
					ats = "yes"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", id, t.Name, t.Category, t.Layout, ats, strings.Join(t.Features, ", "))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if len(list) == 0 {
				_, _ = fmt.Fprintf(out, "No templates in category %q\n", category)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list templates in this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print templates as JSON")
	return cmd
}
