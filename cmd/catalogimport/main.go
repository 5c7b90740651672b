package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/match-predictor/internal/app"
	"github.com/riskibarqy/match-predictor/internal/config"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
	catalogfile "github.com/riskibarqy/match-predictor/internal/infrastructure/catalog/file"
	catalogpostgres "github.com/riskibarqy/match-predictor/internal/infrastructure/catalog/postgres"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
)

// catalogimport replaces the postgres team catalog with the contents of a
// catalog file in one transaction.
func main() {
	_ = godotenv.Load()

	path := flag.String("file", "data/teams.json", "catalog file to import")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing to postgres")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Console: true}).Named("catalogimport")
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	leagues, err := catalogfile.NewSource(*path).LoadLeagues(ctx)
	if err != nil {
		logger.Error("load catalog file", "path", *path, "error", err)
		os.Exit(1)
	}
	// Validate and dedup exactly like the service does at startup.
	catalog, err := team.NewCatalog(leagues)
	if err != nil {
		logger.Error("invalid catalog file", "path", *path, "error", err)
		os.Exit(1)
	}
	normalized := make([]team.League, 0, catalog.Len())
	teams := 0
	for _, name := range catalog.LeagueNames() {
		lg, _ := catalog.League(name)
		normalized = append(normalized, lg)
		teams += len(lg.Teams)
	}

	if *dryRun {
		logger.Info("catalog file is valid", "path", *path, "leagues", len(normalized), "teams", teams)
		return
	}

	db, err := app.OpenCatalogDB(ctx, cfg)
	if err != nil {
		logger.Error("open catalog database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := catalogpostgres.NewCatalogRepository(db).ReplaceCatalog(ctx, normalized); err != nil {
		logger.Error("replace catalog", "error", err)
		os.Exit(1)
	}

	logger.Info("catalog imported", "path", *path, "leagues", len(normalized), "teams", teams)
}
