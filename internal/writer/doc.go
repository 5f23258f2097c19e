// Package writer persists rendered scaffold artifacts under a project root.
// It knows three write policies: unconditional overwrite, create-if-absent
// (optionally forced) and line registration through the routes registry.
// In dry-run mode every policy reports what it would do without touching
// the filesystem.
package writer
