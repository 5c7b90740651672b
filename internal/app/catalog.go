package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/match-predictor/internal/config"
	"github.com/riskibarqy/match-predictor/internal/domain/team"
	catalogfile "github.com/riskibarqy/match-predictor/internal/infrastructure/catalog/file"
	catalogpostgres "github.com/riskibarqy/match-predictor/internal/infrastructure/catalog/postgres"
	"github.com/riskibarqy/match-predictor/internal/platform/dburl"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// OpenCatalogDB opens the traced postgres pool that backs the team catalog.
func OpenCatalogDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is empty")
	}

	dsn := dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dburl.DBName(dsn)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres %s: %w", dburl.Redact(dsn), err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres %s: %w", dburl.Redact(dsn), err)
	}

	return db, nil
}

// loadCatalog builds the immutable catalog from the configured source. The
// returned close releases the database pool when postgres was used.
func loadCatalog(ctx context.Context, cfg config.Config, logger *logging.Logger) (*team.Catalog, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		db, err := OpenCatalogDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		catalog, err := team.LoadCatalog(ctx, catalogpostgres.NewCatalogRepository(db))
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.InfoContext(ctx, "team catalog loaded", "source", cfg.CatalogSource, "leagues", catalog.Len())
		return catalog, db.Close, nil
	default:
		catalog, err := team.LoadCatalog(ctx, catalogfile.NewSource(cfg.CatalogPath))
		if err != nil {
			return nil, nil, err
		}
		logger.InfoContext(ctx, "team catalog loaded", "source", cfg.CatalogSource, "path", cfg.CatalogPath, "leagues", catalog.Len())
		return catalog, noop, nil
	}
}
