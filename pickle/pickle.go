// Package pickle derives structured (JSON) codecs from wrapper definitions.
//
// A wrapper is encoded as its primitive's natural node: a string wrapper as a
// JSON string, an integer wrapper as a JSON number, with no extra object or
// tag around it. Decoding runs the structural type check first and reports
// its message verbatim ("expected number got boolean at index 0"); only a
// well-typed node reaches the wrapper predicates.
package pickle

import (
	"fmt"
	"unicode/utf8"

	"github.com/reoring/refined"
	eng "github.com/reoring/refined/internal/engine"
	js "github.com/reoring/refined/jsonschema"
	jsonsrc "github.com/reoring/refined/source/json"
)

// Pickler decodes and encodes W over structured text. DecodeNode and
// EncodeNode work on an already parsed tree so picklers compose.
type Pickler[W any] interface {
	Decode(text string) (W, error)
	Encode(v W) string
	DecodeNode(n *refined.Node) (W, error)
	EncodeNode(v W) *refined.Node
	JSONSchema() *js.Schema
}

// Parse reads structured text into a tree. Failures are *refined.ParseError
// with the engine's message. Text that is not valid UTF-8 is rejected rather
// than decoded with replacement characters.
func Parse(text string) (*refined.Node, error) {
	if i := invalidUTF8(text); i >= 0 {
		return nil, &refined.ParseError{
			Code:    refined.CodeParseError,
			Message: fmt.Sprintf("invalid UTF-8 at index %d", i),
			Offset:  int64(i),
		}
	}
	n, err := eng.ParseTree(jsonsrc.NewString(text))
	if err != nil {
		return nil, refined.ParseErrorOf(err)
	}
	return n, nil
}

// invalidUTF8 returns the byte index of the first invalid sequence, or -1.
func invalidUTF8(s string) int {
	if utf8.ValidString(s) {
		return -1
	}
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return -1
}

// Render writes a tree as compact JSON. It panics on nodes that cannot be
// represented, which only hand-built trees can contain.
func Render(n *refined.Node) string {
	b, err := eng.Write(n)
	if err != nil {
		panic("pickle: " + err.Error())
	}
	return string(b)
}

type nodeCodec[W any] interface {
	DecodeNode(n *refined.Node) (W, error)
	EncodeNode(v W) *refined.Node
}

func decodeText[W any](c nodeCodec[W], text string) (W, error) {
	var zero W
	n, err := Parse(text)
	if err != nil {
		return zero, refined.Fail(text, err)
	}
	v, err := c.DecodeNode(n)
	if err != nil {
		return zero, refined.Fail(text, err)
	}
	return v, nil
}

// Derive builds the pickler for a wrapper definition or primitive base.
func Derive[W any](u refined.Underlying[W]) Pickler[W] { return &scalar[W]{u: u} }

type scalar[W any] struct{ u refined.Underlying[W] }

func (s *scalar[W]) Decode(text string) (W, error)         { return decodeText[W](s, text) }
func (s *scalar[W]) Encode(v W) string                     { return Render(s.u.EncodeNode(v)) }
func (s *scalar[W]) DecodeNode(n *refined.Node) (W, error) { return s.u.DecodeNode(n) }
func (s *scalar[W]) EncodeNode(v W) *refined.Node          { return s.u.EncodeNode(v) }
func (s *scalar[W]) JSONSchema() *js.Schema                { return s.u.JSONSchema() }
