package refined

import "fmt"

// Wrapped is a ready-made opaque carrier. Tag is a phantom type that makes
// every instantiation distinct:
//
//	type emailTag struct{}
//	type Email = refined.Wrapped[string, emailTag]
type Wrapped[U, Tag any] struct{ value U }

// Value returns the underlying value.
func (w Wrapped[U, Tag]) Value() U { return w.value }

func (w Wrapped[U, Tag]) String() string { return fmt.Sprint(w.value) }

// NewtypeOf defines an opaque wrapper carried by Wrapped[U, Tag].
func NewtypeOf[Tag, U any](name string, base Underlying[U], preds ...Predicate[U]) *Definition[Wrapped[U, Tag], U] {
	return Newtype(name, base,
		func(u U) Wrapped[U, Tag] { return Wrapped[U, Tag]{value: u} },
		func(w Wrapped[U, Tag]) U { return w.value },
		preds...)
}
