package codec

import (
	"strings"

	"github.com/reoring/refined"
)

// Delimited derives a list codec for values such as "ids=1,2,3". An empty
// string decodes to an empty slice. The first failing element is reported
// with path /<index>.
func Delimited[W any](sep string, elem PlainCodec[W]) PlainCodec[[]W] {
	if sep == "" {
		panic("codec: delimiter must not be empty")
	}
	return &delimitedCodec[W]{sep: sep, elem: elem}
}

type delimitedCodec[W any] struct {
	sep  string
	elem PlainCodec[W]
}

func (c *delimitedCodec[W]) TypeName() string { return "[]" + c.elem.TypeName() }

func (c *delimitedCodec[W]) Decode(s string) ([]W, error) {
	if s == "" {
		return []W{}, nil
	}
	parts := strings.Split(s, c.sep)
	out := make([]W, 0, len(parts))
	for i, p := range parts {
		v, err := c.elem.Decode(p)
		if err != nil {
			return nil, refined.Fail(s, refined.Fail(p, err).Rebase(refined.IndexSegment(i)))
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *delimitedCodec[W]) Encode(vs []W) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = c.elem.Encode(v)
	}
	return strings.Join(parts, c.sep)
}
