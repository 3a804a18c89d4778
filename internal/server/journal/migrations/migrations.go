// Package migrations embeds the goose migrations of the upload journal.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
