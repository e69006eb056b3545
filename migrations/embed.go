// Package migrations carries the forward-only SQL schema history compiled
// into the server binaries, so a fresh deployment needs no migration tooling.
package migrations

import "embed"

// FS holds every numbered migration script.
//
//go:embed *.sql
var FS embed.FS
