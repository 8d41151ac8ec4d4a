// Package migrations embeds the SQL schema migrations applied with goose
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
