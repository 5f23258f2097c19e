// Package cli defines the Cobra command tree for the larascaffold CLI. Each
// file registers one top-level command with the root command. Commands only
// parse arguments and flags and format output; generation, configuration and
// project detection live in their own internal packages.
package cli
