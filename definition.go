package refined

import (
	js "github.com/reoring/refined/jsonschema"
)

// Kind is the lifting discipline of a wrapper.
type Kind uint8

const (
	// Opaque wrappers hide the underlying representation: W is a distinct
	// struct and conversions go through Make and Unwrap.
	Opaque Kind = iota
	// Transparent wrappers share the underlying runtime representation
	// (type Port int) but construction still runs the predicates.
	Transparent
)

func (k Kind) String() string {
	switch k {
	case Opaque:
		return "opaque"
	case Transparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// Definition is the single source of truth for a wrapper type W over U. It is
// immutable once built and safe for concurrent use; declare definitions as
// package-level values.
//
// A Definition implements Underlying[W], so it can serve as the base of
// another Definition.
type Definition[W, U any] struct {
	name        string
	kind        Kind
	description string
	base        Underlying[U]
	preds       []Predicate[U]
	wrap        func(U) W
	unwrap      func(W) U
}

// Newtype defines an opaque wrapper. wrap and unwrap convert between the
// caller's W and its underlying value; they must not validate.
func Newtype[W, U any](name string, base Underlying[U], wrap func(U) W, unwrap func(W) U, preds ...Predicate[U]) *Definition[W, U] {
	return define(name, Opaque, base, wrap, unwrap, preds)
}

// Subtype defines a transparent wrapper.
func Subtype[W, U any](name string, base Underlying[U], wrap func(U) W, unwrap func(W) U, preds ...Predicate[U]) *Definition[W, U] {
	return define(name, Transparent, base, wrap, unwrap, preds)
}

// StringSubtype defines a transparent wrapper over string.
func StringSubtype[W ~string](name string, preds ...Predicate[string]) *Definition[W, string] {
	return Subtype(name, String(), func(s string) W { return W(s) }, func(w W) string { return string(w) }, preds...)
}

// IntSubtype defines a transparent wrapper over int.
func IntSubtype[W ~int](name string, preds ...Predicate[int]) *Definition[W, int] {
	return Subtype(name, Int(), func(i int) W { return W(i) }, func(w W) int { return int(w) }, preds...)
}

// FloatSubtype defines a transparent wrapper over float64.
func FloatSubtype[W ~float64](name string, preds ...Predicate[float64]) *Definition[W, float64] {
	return Subtype(name, Float(), func(f float64) W { return W(f) }, func(w W) float64 { return float64(w) }, preds...)
}

// BoolSubtype defines a transparent wrapper over bool.
func BoolSubtype[W ~bool](name string, preds ...Predicate[bool]) *Definition[W, bool] {
	return Subtype(name, Bool(), func(b bool) W { return W(b) }, func(w W) bool { return bool(w) }, preds...)
}

func define[W, U any](name string, kind Kind, base Underlying[U], wrap func(U) W, unwrap func(W) U, preds []Predicate[U]) *Definition[W, U] {
	if name == "" {
		panic("refined: definition name must not be empty")
	}
	if base == nil || wrap == nil || unwrap == nil {
		panic("refined: definition " + name + " needs a base, wrap and unwrap")
	}
	for _, p := range preds {
		if p.Check == nil {
			panic("refined: definition " + name + " has a predicate without Check")
		}
	}
	return &Definition[W, U]{
		name:   name,
		kind:   kind,
		base:   base,
		preds:  append([]Predicate[U](nil), preds...),
		wrap:   wrap,
		unwrap: unwrap,
	}
}

// WithDescription returns a copy carrying a human-readable description for
// schema nodes.
func (d *Definition[W, U]) WithDescription(desc string) *Definition[W, U] {
	out := *d
	out.description = desc
	return &out
}

func (d *Definition[W, U]) Name() string        { return d.name }
func (d *Definition[W, U]) Kind() Kind          { return d.kind }
func (d *Definition[W, U]) Description() string { return d.description }
func (d *Definition[W, U]) Base() Underlying[U] { return d.base }
func (d *Definition[W, U]) Predicates() []Predicate[U] {
	return append([]Predicate[U](nil), d.preds...)
}

// Check evaluates the predicates in order against raw and returns a
// *ValidationError for the first one that fails.
func (d *Definition[W, U]) Check(raw U) error {
	for _, p := range d.preds {
		if !p.Check(raw) {
			return &ValidationError{Type: d.name, Rule: p.Name, Message: p.Message, Value: d.base.Raw(raw)}
		}
	}
	return nil
}

// Make is the validated constructor. It is the only path used by derived
// decoders.
func (d *Definition[W, U]) Make(raw U) (W, error) {
	if err := d.Check(raw); err != nil {
		var zero W
		return zero, err
	}
	return d.wrap(raw), nil
}

// MustMake is Make for package-level values known to be valid. It panics on
// failure.
func (d *Definition[W, U]) MustMake(raw U) W {
	w, err := d.Make(raw)
	if err != nil {
		panic("refined: " + d.name + ": " + err.Error())
	}
	return w
}

// UnsafeMake wraps raw without checking any predicate. The result may violate
// the definition; use it only to build fixtures for failure scenarios.
func (d *Definition[W, U]) UnsafeMake(raw U) W { return d.wrap(raw) }

// Unwrap returns the underlying value of w.
func (d *Definition[W, U]) Unwrap(w W) U { return d.unwrap(w) }

// ---- Underlying[W] ----

func (d *Definition[W, U]) TypeName() string { return d.name }

func (d *Definition[W, U]) ParseText(s string) (W, error) {
	u, err := d.base.ParseText(s)
	if err != nil {
		var zero W
		return zero, err
	}
	return d.Make(u)
}

func (d *Definition[W, U]) FormatText(w W) string { return d.base.FormatText(d.unwrap(w)) }

func (d *Definition[W, U]) DecodeNode(n *Node) (W, error) {
	u, err := d.base.DecodeNode(n)
	if err != nil {
		var zero W
		return zero, err
	}
	return d.Make(u)
}

func (d *Definition[W, U]) EncodeNode(w W) *Node { return d.base.EncodeNode(d.unwrap(w)) }

// Violations checks the inner chain first; an inner failure hides any outer
// one.
func (d *Definition[W, U]) Violations(w W) Issues {
	u := d.unwrap(w)
	if iss := d.base.Violations(u); len(iss) > 0 {
		return iss
	}
	if err := d.Check(u); err != nil {
		return Issues{err.(*ValidationError).Issue()}
	}
	return nil
}

func (d *Definition[W, U]) Raw(w W) any { return d.base.Raw(d.unwrap(w)) }

// JSONSchema extends the base node with the definition's title, description
// and predicates.
func (d *Definition[W, U]) JSONSchema() *js.Schema {
	s := d.base.JSONSchema().Clone()
	s.Title = d.name
	if d.description != "" {
		s.Description = d.description
	}
	for _, p := range d.preds {
		p.Annotate(s)
	}
	return s
}
