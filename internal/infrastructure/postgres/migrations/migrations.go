// Package migrations embeds the goose SQL migrations for the client's
// postgres credential store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
