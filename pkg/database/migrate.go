package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationTable = "intake_schema_migrations"

// Migrate provisions the inscripciones table from the embedded goose migrations.
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{log: logger.Sugar()})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (g *gooseLogger) Printf(format string, args ...interface{}) {
	g.log.Infof(format, args...)
}

// Fatalf logs at error level; goose still returns the error to Migrate.
func (g *gooseLogger) Fatalf(format string, args ...interface{}) {
	g.log.Errorf(format, args...)
}
