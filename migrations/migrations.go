// Package migrations embeds the schema migrations for every supported export target.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
