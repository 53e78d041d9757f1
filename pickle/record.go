package pickle

import (
	"github.com/reoring/refined"
	"github.com/reoring/refined/i18n"
	eng "github.com/reoring/refined/internal/engine"
	js "github.com/reoring/refined/jsonschema"
)

// UnknownPolicy controls how object keys without a field are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Ignore unknown keys.
	UnknownStrict                      // Reject unknown keys with an error.
)

// Field describes one field of record R for structured encode/decode.
type Field[R any] struct {
	name   string
	decode func(n *refined.Node, r *R) error
	encode func(r R) *refined.Node
	schema func() *js.Schema
}

// FieldOf binds a field name, accessors and the field's own pickler.
func FieldOf[R, F any](name string, get func(R) F, set func(*R, F), p Pickler[F]) Field[R] {
	return Field[R]{
		name: name,
		decode: func(n *refined.Node, r *R) error {
			v, err := p.DecodeNode(n)
			if err != nil {
				return err
			}
			set(r, v)
			return nil
		},
		encode: func(r R) *refined.Node { return p.EncodeNode(get(r)) },
		schema: p.JSONSchema,
	}
}

// Name returns the field name.
func (f Field[R]) Name() string { return f.name }

// RecordPickler encodes R as a JSON object with one member per field, in
// declaration order. Decoding handles fields independently and reports the
// first failing field only; failures are never pooled across fields.
type RecordPickler[R any] struct {
	name    string
	fields  []Field[R]
	known   map[string]struct{}
	unknown UnknownPolicy
	init    func() R
}

// Record builds a record pickler. Field names must be unique.
func Record[R any](name string, fields ...Field[R]) *RecordPickler[R] {
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.decode == nil {
			panic("pickle: record " + name + " has an uninitialized field")
		}
		if _, dup := known[f.name]; dup {
			panic("pickle: record " + name + " declares field " + f.name + " twice")
		}
		known[f.name] = struct{}{}
	}
	return &RecordPickler[R]{name: name, fields: append([]Field[R](nil), fields...), known: known}
}

// UnknownStrict returns a copy that rejects keys without a field.
func (r *RecordPickler[R]) UnknownStrict() *RecordPickler[R] {
	out := *r
	out.unknown = UnknownStrict
	return &out
}

// WithInit returns a copy that starts decoding from init() instead of the
// zero value. Records backed by maps need it.
func (r *RecordPickler[R]) WithInit(init func() R) *RecordPickler[R] {
	out := *r
	out.init = init
	return &out
}

func (r *RecordPickler[R]) Decode(text string) (R, error) { return decodeText[R](r, text) }

func (r *RecordPickler[R]) Encode(v R) string { return Render(r.EncodeNode(v)) }

func (r *RecordPickler[R]) DecodeNode(n *refined.Node) (R, error) {
	var out R
	if r.init != nil {
		out = r.init()
	}
	if n.Kind != eng.KindObject {
		var zero R
		return zero, refined.ParseErrorOf(eng.Mismatch("object", n))
	}
	for _, f := range r.fields {
		seg := refined.EscapeSegment(f.name)
		child, ok := n.Get(f.name)
		if !ok {
			var zero R
			return zero, refined.Fail("", &refined.ParseError{
				Code:    refined.CodeRequired,
				Message: i18n.T(refined.CodeRequired, nil),
				Offset:  n.Offset,
			}).Rebase(seg)
		}
		if err := f.decode(child, &out); err != nil {
			var zero R
			return zero, refined.Fail("", err).Rebase(seg)
		}
	}
	if r.unknown == UnknownStrict {
		for _, m := range n.Members {
			if _, ok := r.known[m.Key]; ok {
				continue
			}
			var zero R
			return zero, refined.Fail("", &refined.ParseError{
				Code:    refined.CodeUnknownKey,
				Message: i18n.T(refined.CodeUnknownKey, map[string]string{"key": m.Key}),
				Offset:  m.KeyOffset,
			}).Rebase(refined.EscapeSegment(m.Key))
		}
	}
	return out, nil
}

func (r *RecordPickler[R]) EncodeNode(v R) *refined.Node {
	members := make([]refined.Member, 0, len(r.fields))
	for _, f := range r.fields {
		members = append(members, refined.Member{Key: f.name, KeyOffset: -1, Value: f.encode(v)})
	}
	return eng.ObjectNode(members...)
}

func (r *RecordPickler[R]) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "object", Title: r.name, Properties: make(map[string]*js.Schema, len(r.fields))}
	for _, f := range r.fields {
		s.Properties[f.name] = f.schema()
		s.Required = append(s.Required, f.name)
	}
	if r.unknown == UnknownStrict {
		s.AdditionalProperties = false
	}
	return s
}
