// Package gamedata provides embedded card, enemy and class definitions and
// the immutable registries built from them.
package gamedata

import "embed"

// dataFS embeds all definition files from this directory at build time.
//
//go:embed *.json *.yaml
var dataFS embed.FS
