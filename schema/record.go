package schema

import (
	"github.com/reoring/refined"
	js "github.com/reoring/refined/jsonschema"
)

// Field describes one field of record R for validation.
type Field[R any] struct {
	name     string
	validate func(R) refined.Issues
	schema   func() *js.Schema
}

// FieldOf binds a field name and accessor to the field's own validator.
func FieldOf[R, F any](name string, get func(R) F, v Validator[F]) Field[R] {
	return Field[R]{
		name:     name,
		validate: func(r R) refined.Issues { return v.Validate(get(r)) },
		schema:   v.JSONSchema,
	}
}

// Name returns the field name.
func (f Field[R]) Name() string { return f.name }

// RecordValidator validates every field of R. Its issues are the union of
// the field issues in declaration order, with paths rooted at the field name.
type RecordValidator[R any] struct {
	name   string
	fields []Field[R]
}

// Record builds a record validator. Field names must be unique.
func Record[R any](name string, fields ...Field[R]) *RecordValidator[R] {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.validate == nil {
			panic("schema: record " + name + " has an uninitialized field")
		}
		if _, dup := seen[f.name]; dup {
			panic("schema: record " + name + " declares field " + f.name + " twice")
		}
		seen[f.name] = struct{}{}
	}
	return &RecordValidator[R]{name: name, fields: append([]Field[R](nil), fields...)}
}

func (r *RecordValidator[R]) Validate(v R) refined.Issues {
	var out refined.Issues
	for _, f := range r.fields {
		if iss := f.validate(v); len(iss) > 0 {
			out = refined.AppendIssues(out, iss.Rebase(refined.EscapeSegment(f.name))...)
		}
	}
	return out
}

func (r *RecordValidator[R]) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "object", Title: r.name, Properties: make(map[string]*js.Schema, len(r.fields))}
	for _, f := range r.fields {
		s.Properties[f.name] = f.schema()
		s.Required = append(s.Required, f.name)
	}
	return s
}

// SliceValidator validates every element of a slice.
type SliceValidator[W any] struct{ elem Validator[W] }

// Slice builds a validator over []W from the element validator.
func Slice[W any](elem Validator[W]) *SliceValidator[W] { return &SliceValidator[W]{elem: elem} }

func (s *SliceValidator[W]) Validate(vs []W) refined.Issues {
	var out refined.Issues
	for i, v := range vs {
		if iss := s.elem.Validate(v); len(iss) > 0 {
			out = refined.AppendIssues(out, iss.Rebase(refined.IndexSegment(i))...)
		}
	}
	return out
}

func (s *SliceValidator[W]) JSONSchema() *js.Schema {
	return &js.Schema{Type: "array", Items: s.elem.JSONSchema()}
}
