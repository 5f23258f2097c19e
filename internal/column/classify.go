package column

import (
	"fmt"
	"slices"
	"strings"
)

// Classification is the result of partitioning a column list.
type Classification struct {
	// Fillable holds names whose type is not excluded, in input order.
	Fillable []string
	// Migration holds every column as "name:type", in input order.
	Migration []string
}

// Classifier decides which column types are mass-assignable.
type Classifier struct {
	excluded []string
}

// NewClassifier returns a Classifier excluding the given types. A nil or
// empty list falls back to ExcludedTypes.
func NewClassifier(excluded []string) *Classifier {
	if len(excluded) == 0 {
		excluded = ExcludedTypes
	}
	return &Classifier{excluded: slices.Clone(excluded)}
}

// IsFillable reports whether a column of the given type may be mass-assigned.
// Type comparison is case-sensitive, matching schema-builder method names.
func (c *Classifier) IsFillable(typ string) bool {
	return !slices.Contains(c.excluded, typ)
}

// Classify walks specs once, sending every column to the migration list and
// the non-excluded ones to the fillable list. Duplicate names pass through.
func (c *Classifier) Classify(specs []Spec) Classification {
	var out Classification
	out.Migration = make([]string, 0, len(specs))
	for _, s := range specs {
		out.Migration = append(out.Migration, s.String())
		if c.IsFillable(s.Type) {
			out.Fillable = append(out.Fillable, s.Name)
		}
	}
	return out
}

// Fillable returns the fillable names using the default exclusion set.
func Fillable(specs []Spec) []string {
	return NewClassifier(nil).Classify(specs).Fillable
}

// MigrationColumns returns every spec as "name:type".
func MigrationColumns(specs []Spec) []string {
	return NewClassifier(nil).Classify(specs).Migration
}

// Definitions renders one schema-builder call per column,
// e.g. $table->string('title');
func Definitions(specs []Spec) []string {
	defs := make([]string, 0, len(specs))
	for _, s := range specs {
		defs = append(defs, fmt.Sprintf("$table->%s(%s);", s.Type, Quote(s.Name)))
	}
	return defs
}

// Quote renders s as a single-quoted PHP string literal.
func Quote(s string) string {
	return "'" + phpEscaper.Replace(s) + "'"
}

var phpEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
