package migrations

import (
	_ "embed"

	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_fans.sql
var createFansSQL string

//go:embed 0002_create_quizzes.sql
var createQuizzesSQL string

//go:embed 0003_create_catalog.sql
var createCatalogSQL string

var Migrations = migrate.NewMigrations()
