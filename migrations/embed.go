// Package migrations embeds the schema migrations shipped with the server.
package migrations

import "embed"

// FS holds every numbered *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
