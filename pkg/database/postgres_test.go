package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-enrollment-intake/pkg/config"
)

func TestDSNOmitsEmptyPassword(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "db", Port: 5432, User: "app", Name: "colegio", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=app dbname=colegio sslmode=disable", DSN(cfg))

	cfg.Password = "s3cret"
	assert.Contains(t, DSN(cfg), "password='s3cret'")
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")

	assert.NoError(t, err)
	assert.NotEmpty(t, entries)
}
