// Package schema derives structural validators from wrapper definitions and
// composes them into records and slices. A validator reports violations of an
// already constructed value; it consumes no external text.
package schema

import (
	"strings"

	"github.com/reoring/refined"
	js "github.com/reoring/refined/jsonschema"
)

// Validator reports every violation of v. A nil result means v is valid.
type Validator[W any] interface {
	Validate(v W) refined.Issues
	JSONSchema() *js.Schema
}

// Scalar validates a single wrapper (or primitive) value.
type Scalar[W any] struct{ u refined.Underlying[W] }

// Derive builds the validator for u. For a definition the value is valid iff
// every predicate along the unwrap chain holds; the first violated predicate,
// innermost first, is reported with the raw primitive as its value.
func Derive[W any](u refined.Underlying[W]) *Scalar[W] { return &Scalar[W]{u: u} }

func (s *Scalar[W]) Validate(v W) refined.Issues {
	iss := s.u.Violations(v)
	if len(iss) == 0 {
		return nil
	}
	return iss
}

func (s *Scalar[W]) JSONSchema() *js.Schema { return s.u.JSONSchema() }

// Description joins the failure messages attached to the schema node; this is
// the text documentation tooling shows next to the type.
func (s *Scalar[W]) Description() string {
	node := s.u.JSONSchema()
	msgs := make([]string, 0, len(node.Validations))
	for _, v := range node.Validations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// Is reports whether v has no violations.
func Is[W any](v Validator[W], x W) bool { return len(v.Validate(x)) == 0 }
