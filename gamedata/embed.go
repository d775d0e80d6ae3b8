// Package gamedata provides the embedded game content and utilities for
// loading and validating it.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
