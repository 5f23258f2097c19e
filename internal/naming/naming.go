// Package naming derives the Laravel class, table, view and file names used
// by a scaffold from the resource and model names given on the command line.
package naming

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// TimestampLayout is the migration filename prefix format (Y_m_d_His).
const TimestampLayout = "2006_01_02_150405"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier checks that value can be used as a PHP identifier
// fragment. kind names the argument in the error message.
func ValidateIdentifier(kind, value string) error {
	if value == "" {
		return errors.WithHintf(errors.Newf("%s must not be empty", kind),
			"pass the %s as a positional argument, e.g. post", kind)
	}
	if !identifierPattern.MatchString(value) {
		return errors.WithHint(
			errors.Newf("invalid %s %q: must match pattern [A-Za-z_][A-Za-z0-9_]*", kind, value),
			"use letters, digits and underscores, starting with a letter or underscore")
	}
	return nil
}

// UpperFirst upper-cases the first rune and leaves the rest untouched.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Studly upper-cases the first letter of every underscore-separated word and
// drops the underscores: "blog_post" → "BlogPost".
func Studly(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		words[i] = UpperFirst(w)
	}
	return strings.Join(words, "")
}

// ControllerName returns "<Name>Controller".
func ControllerName(name string) string {
	return UpperFirst(name) + "Controller"
}

// ModelName returns the model class name.
func ModelName(model string) string {
	return UpperFirst(model)
}

// TableName pluralises the model class name by appending "s".
func TableName(model string) string {
	return ModelName(model) + "s"
}

// MigrationClass returns "Create<Studly>Table".
func MigrationClass(name string) string {
	return "Create" + Studly(name) + "Table"
}

// ViewDir returns the per-resource view directory name.
func ViewDir(name string) string {
	return strings.ToLower(name)
}

// Timestamp formats t as a migration filename prefix.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// MigrationFile returns the migration file base name without extension,
// e.g. "2024_01_02_030405_create_post_table".
func MigrationFile(name string, t time.Time) string {
	return Timestamp(t) + "_create_" + strings.ToLower(name) + "_table"
}
