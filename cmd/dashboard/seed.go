package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dashboard/internal/database"
	"dashboard/internal/service"
	logx "dashboard/pkg/logger"
)

var (
	seedFile string
	seedName string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store a dashboard document in Postgres",
	Long: `Reads a dashboard document from a JSON file, checks that it decodes and
stores it in the dashboard_documents table under the given name.

Example:
  dashboard seed --database postgres://localhost/dashboard --file public/data/data.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURI == "" {
			return errors.New("seed needs --database or DATABASE_URI")
		}
		name := seedName
		if name == "" {
			name = cfg.DataDocument
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		return seed(ctx, cfg.DatabaseURI, seedFile, name)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "public/data/data.json", "document to store")
	seedCmd.Flags().StringVar(&seedName, "name", "", "document name (defaults to --document)")
}

func seed(ctx context.Context, uri, file, name string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	doc, err := service.Decode(raw)
	if err != nil {
		return err
	}

	db, err := database.NewDB(ctx, uri)
	if err != nil {
		return fmt.Errorf("connect to DB: %w", err)
	}
	defer database.CloseDB(db)

	if err := database.InitSchema(ctx, db); err != nil {
		return fmt.Errorf("init DB schema: %w", err)
	}
	if err := database.NewDocuments(db).Put(ctx, name, raw); err != nil {
		return err
	}

	logx.Info().
		Str("document", name).
		Int("orders", len(doc.Orders)).
		Int("products", len(doc.Products)).
		Int("clients", len(doc.Clients)).
		Msg("document stored")
	return nil
}
