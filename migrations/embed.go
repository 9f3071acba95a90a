// Package migrations embeds the portal's SQL schema migrations so the goose
// programmatic API can apply them in tests and at server bootstrap.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time, so the binary
// never depends on a migrations directory existing at runtime.
//
//go:embed *.sql
var FS embed.FS
