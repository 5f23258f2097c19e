package column

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Separator splits a token into name and type.
const Separator = ":"

// ExpectedFormat is shown to the user when a token cannot be parsed.
const ExpectedFormat = "name:type"

// ExcludedTypes are the schema types that never become fillable attributes.
var ExcludedTypes = []string{"integer", "bigInteger", "float", "double", "boolean"}

// ErrNoColumns is returned when the column list is empty.
var ErrNoColumns = errors.New("no columns given")

// Spec is one parsed column token.
type Spec struct {
	Name string
	Type string
}

// String renders the spec back into its "name:type" token form.
func (s Spec) String() string {
	return s.Name + Separator + s.Type
}

// MalformedError reports a token that does not split into exactly one
// non-empty name and one non-empty type.
type MalformedError struct {
	Token  string
	Index  int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed column specification %q at index %d: %s (expected format %s)",
		e.Token, e.Index, e.Reason, ExpectedFormat)
}

// Parse splits raw on commas and parses every token. Surrounding whitespace
// is ignored. The first bad token aborts parsing.
func Parse(raw string) ([]Spec, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.WithHint(ErrNoColumns, "pass at least one column, e.g. title:string,body:text")
	}

	tokens := strings.Split(raw, ",")
	specs := make([]Spec, 0, len(tokens))
	for i, tok := range tokens {
		spec, err := parseToken(strings.TrimSpace(tok), i)
		if err != nil {
			return nil, errors.WithHintf(err, "columns are comma-separated %s pairs, e.g. title:string,views:integer", ExpectedFormat)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseToken(tok string, index int) (Spec, error) {
	if tok == "" {
		return Spec{}, &MalformedError{Token: tok, Index: index, Reason: "empty token"}
	}

	parts := strings.Split(tok, Separator)
	switch {
	case len(parts) < 2:
		return Spec{}, &MalformedError{Token: tok, Index: index, Reason: "missing '" + Separator + "' separator"}
	case len(parts) > 2:
		return Spec{}, &MalformedError{Token: tok, Index: index, Reason: "more than one '" + Separator + "' separator"}
	}

	name, typ := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if name == "" {
		return Spec{}, &MalformedError{Token: tok, Index: index, Reason: "empty column name"}
	}
	if typ == "" {
		return Spec{}, &MalformedError{Token: tok, Index: index, Reason: "empty column type"}
	}
	return Spec{Name: name, Type: typ}, nil
}
