// Package configs provides the embedded configuration template for appdex.
//
// The template is embedded at build time with go:embed so it ships in every
// distribution. `appdex config init` writes it to the user config path
// (~/.config/appdex/config.yaml on Linux); internal/config then layers the
// file over the hardcoded defaults, with APPDEX_* environment variables on
// top.
package configs

import _ "embed"

// UserConfigTemplate is a fully commented configuration file with every
// setting at its default value.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
