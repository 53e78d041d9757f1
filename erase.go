package refined

import (
	"fmt"

	js "github.com/reoring/refined/jsonschema"
)

// Erase adapts an Underlying[U] to work on values boxed as any. It backs
// definitions assembled at runtime (see package catalog). Violations reports
// a value of another type as an invalid_type issue; the other methods panic
// on one.
func Erase[U any](u Underlying[U]) Underlying[any] { return erased[U]{u: u} }

type erased[U any] struct{ u Underlying[U] }

func (e erased[U]) TypeName() string { return e.u.TypeName() }

func (e erased[U]) ParseText(s string) (any, error) {
	v, err := e.u.ParseText(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e erased[U]) FormatText(v any) string { return e.u.FormatText(e.cast(v)) }

func (e erased[U]) DecodeNode(n *Node) (any, error) {
	v, err := e.u.DecodeNode(n)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e erased[U]) EncodeNode(v any) *Node { return e.u.EncodeNode(e.cast(v)) }
func (e erased[U]) Raw(v any) any          { return e.u.Raw(e.cast(v)) }
func (e erased[U]) JSONSchema() *js.Schema { return e.u.JSONSchema() }

func (e erased[U]) Violations(v any) Issues {
	u, ok := v.(U)
	if !ok {
		return Issues{{
			Path:    "/",
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("expected %s got %T", e.u.TypeName(), v),
			Value:   v,
			Offset:  -1,
		}}
	}
	return e.u.Violations(u)
}

func (e erased[U]) cast(v any) U {
	u, ok := v.(U)
	if !ok {
		panic(fmt.Sprintf("refined: %s expects %T, got %T", e.u.TypeName(), u, v))
	}
	return u
}

// ErasePredicate adapts p to values boxed as any. Values of another dynamic
// type fail the check.
func ErasePredicate[T any](p Predicate[T]) Predicate[any] {
	return Predicate[any]{
		Name:    p.Name,
		Message: p.Message,
		Check: func(v any) bool {
			t, ok := v.(T)
			return ok && p.Check(t)
		},
		annotate: p.annotate,
	}
}
