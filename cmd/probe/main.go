package main

import (
	"context"
	"os"
	"time"

	"github.com/okian/roster/internal/domain/geo"
	"github.com/okian/roster/internal/probe"
	"github.com/okian/roster/pkg/logger"
	"github.com/spf13/cobra"
)

// Default configuration constants.
const (
	defaultURL         = "http://localhost:9080"
	defaultTimeout     = 30 * time.Second
	defaultProbeBudget = 2 * time.Minute
)

var cfg = &probe.Config{} //nolint:gochecknoglobals // flag targets

var (
	geoTablePath string //nolint:gochecknoglobals // flag target
	logFormat    string //nolint:gochecknoglobals // flag target
)

var rootCmd = &cobra.Command{ //nolint:gochecknoglobals // cobra root
	Use:   "probe",
	Short: "Exercise a running roster server and verify its views",
	Long: "Logs into a roster server, fetches the employee list, salary chart and city map, " +
		"recomputes both views locally and reports any difference.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logger.Init(logger.WithFormat(logFormat)); err != nil {
			return err
		}
		if cfg.Verbose {
			return logger.SetLevelString("debug")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		table := geo.Default()
		if geoTablePath != "" {
			t, err := geo.LoadFile(geoTablePath)
			if err != nil {
				return err
			}
			table = t
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), defaultProbeBudget)
		defer cancel()

		_, err := probe.Run(ctx, cfg, table)
		return err
	},
}

func init() { //nolint:gochecknoinits // cobra flag registration
	f := rootCmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", defaultURL, "Base URL of the service")
	f.StringVar(&cfg.Username, "username", "testuser", "Login username")
	f.StringVar(&cfg.Password, "password", "Test123", "Login password")
	f.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	f.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	f.StringVar(&geoTablePath, "geo-table", "", "YAML city -> [lat, lng] table the server was started with")
	f.StringVar(&logFormat, "log-format", "text", "Log output format: text or json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
