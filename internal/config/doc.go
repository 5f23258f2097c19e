// Package config resolves generator settings. User-level defaults live at
// ~/.larascaffold/config.yaml and are managed by "config get/set"; a project
// may override them in .larascaffold.yaml at its root. Environment variables
// prefixed LARASCAFFOLD_ (also read from the project's .env) and command-line
// flags take precedence over both files.
package config
