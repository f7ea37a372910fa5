package migrations

import "embed"

// FS содержит миграции для обоих движков: postgres/ и sqlite/
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
