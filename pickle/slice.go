package pickle

import (
	"github.com/reoring/refined"
	eng "github.com/reoring/refined/internal/engine"
	js "github.com/reoring/refined/jsonschema"
)

// Slice derives a pickler for JSON arrays of W. The first failing element is
// reported with path /<index>.
func Slice[W any](elem Pickler[W]) Pickler[[]W] { return &slice[W]{elem: elem} }

type slice[W any] struct{ elem Pickler[W] }

func (s *slice[W]) Decode(text string) ([]W, error) { return decodeText[[]W](s, text) }
func (s *slice[W]) Encode(vs []W) string            { return Render(s.EncodeNode(vs)) }

func (s *slice[W]) DecodeNode(n *refined.Node) ([]W, error) {
	if n.Kind != eng.KindArray {
		return nil, refined.ParseErrorOf(eng.Mismatch("array", n))
	}
	out := make([]W, 0, len(n.Items))
	for i, it := range n.Items {
		v, err := s.elem.DecodeNode(it)
		if err != nil {
			return nil, refined.Fail("", err).Rebase(refined.IndexSegment(i))
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *slice[W]) EncodeNode(vs []W) *refined.Node {
	items := make([]*refined.Node, len(vs))
	for i, v := range vs {
		items[i] = s.elem.EncodeNode(v)
	}
	return eng.ArrayNode(items...)
}

func (s *slice[W]) JSONSchema() *js.Schema {
	return &js.Schema{Type: "array", Items: s.elem.JSONSchema()}
}
