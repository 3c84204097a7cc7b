// Package migrations embeds the Postgres schema applied by tern.
package migrations

import "embed"

//go:embed *.sql
var MigrationFiles embed.FS
