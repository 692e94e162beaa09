package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	dir := repoMigrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		b, err := os.ReadFile(file)
		require.NoError(t, err)
		sql := string(b)
		name := filepath.Base(file)

		up := strings.Index(sql, "-- +goose Up")
		down := strings.Index(sql, "-- +goose Down")
		assert.GreaterOrEqual(t, up, 0, "%s missing goose Up", name)
		assert.Greater(t, down, up, "%s needs Down after Up", name)
	}
}

func TestSQLMigrations_ListItemsUniquePerOwnerAndBook(t *testing.T) {
	b, err := os.ReadFile(filepath.Join(repoMigrationsDir(t), "00003_create_list_items.sql"))
	require.NoError(t, err)

	assert.Contains(t, string(b), "CONSTRAINT list_items_owner_book_key UNIQUE (owner_id, book_id)")
}
