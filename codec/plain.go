// Package codec derives plain-text codecs: a single unstructured token such as
// a path segment or a query parameter value.
package codec

import (
	"github.com/reoring/refined"
)

// PlainCodec decodes and encodes a value as a single text token.
type PlainCodec[W any] interface {
	// Decode parses s with the primitive's standard rule, then applies the
	// wrapper predicates. Failures are *refined.DecodeFailure.
	Decode(s string) (W, error)
	// Encode renders the primitive's standard text. It never fails.
	Encode(v W) string
	// TypeName names the decoded type.
	TypeName() string
}

// Plain derives the plain codec for u.
func Plain[W any](u refined.Underlying[W]) PlainCodec[W] { return &plainCodec[W]{u: u} }

type plainCodec[W any] struct{ u refined.Underlying[W] }

func (c *plainCodec[W]) TypeName() string { return c.u.TypeName() }

func (c *plainCodec[W]) Decode(s string) (W, error) {
	v, err := c.u.ParseText(s)
	if err != nil {
		var zero W
		return zero, refined.Fail(s, err)
	}
	return v, nil
}

func (c *plainCodec[W]) Encode(v W) string { return c.u.FormatText(v) }
