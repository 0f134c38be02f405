// Package schemas provides embedded SQL migration files, one directory per driver.
package schemas

import "embed"

// Migrations contains migrations/<driver>/*.sql.
//
//go:embed migrations
var Migrations embed.FS
