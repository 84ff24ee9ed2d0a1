// Package templates provides embedded YAML templates.
package templates

import _ "embed"

// SeedYAML contains the default seed rows of the study database.
//
//go:embed seed.yaml
var SeedYAML string

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string
