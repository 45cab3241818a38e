package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dashboard/internal/config"
	logx "dashboard/pkg/logger"
)

var (
	loader *config.Loader
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Admin dashboard data service",
	Long: `Serves the admin dashboard pages: the dashboard document, chart series and
per-session orders, products and clients tables with filtering, pagination and
in-memory editing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loader.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logx.Init(logx.LoggerOpts{Production: cfg.IsProduction()})
		return nil
	},
}

func init() {
	loader = config.NewLoader(rootCmd.PersistentFlags())
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
