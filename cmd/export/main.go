// Command export writes the stored expenses to a CSV or JSON file without
// starting the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/export"
	"expensetracker/internal/ledger"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(context.Background(), os.Args[1:]); err != nil {
		logger.Get().Fatalf("Export error: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", "csv", "csv or json")
	dir := fs.String("dir", cfg.ExportDir, "output directory")
	sortKey := fs.String("sort", string(ledger.DefaultSortKey), "date_asc, date_desc, amount_asc or amount_desc")
	search := fs.String("q", "", "only expenses whose name contains this text")
	categories := fs.String("categories", "", "comma separated categories to include")
	if err := fs.Parse(args); err != nil {
		return err
	}

	kind, ok := export.ParseKind(*format)
	if !ok {
		return fmt.Errorf("unknown format %q", *format)
	}

	filter := ledger.NewFilterSpec()
	filter.Search = strings.TrimSpace(*search)
	if *categories != "" {
		var selected []models.Category
		for _, label := range strings.Split(*categories, ",") {
			category, ok := models.LookupCategory(label)
			if !ok {
				return fmt.Errorf("unknown category %q", label)
			}
			selected = append(selected, category)
		}
		filter.Categories = ledger.NewCategorySet(selected...)
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	expenseService := services.NewExpenseService(dbManager.DB(), nil)
	exportService := services.NewExportService(expenseService, cfg.Location)

	path, err := exportService.ExportToDir(ctx, *dir, filter, ledger.SortKey(*sortKey), kind)
	if err != nil {
		return err
	}

	logger.Get().Infow("Export written", "path", path, "format", kind)
	return nil
}
