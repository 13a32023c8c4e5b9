package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-composer/internal/server"
	"github.com/jonathan/resume-composer/internal/server/ratelimit"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		port      int
		rateLimit bool
		whitelist string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  `Start an HTTP server that exposes endpoints for composing, previewing and exporting resumes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadSettings(cmd, root, nil)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			limits := ratelimit.DefaultConfig()
			limits.Enabled = rateLimit
			if whitelist == "" {
				whitelist = os.Getenv("RATE_LIMIT_WHITELIST")
			}
			limits.Whitelist = ratelimit.ParseIPList(whitelist)

			srv, err := server.New(server.Config{
				Port:      cfg.Port,
				Settings:  cfg,
				Logger:    cfg.NewLogger(os.Stderr),
				RateLimit: limits,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start()
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	cmd.Flags().BoolVar(&rateLimit, "rate-limit", true, "Limit requests per client")
	cmd.Flags().StringVar(&whitelist, "rate-limit-whitelist", "", "Comma-separated client IPs exempt from rate limiting")
	return cmd
}
