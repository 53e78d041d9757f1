package catalog

import (
	"fmt"

	"github.com/reoring/refined"
	"github.com/reoring/refined/i18n"
	js "github.com/reoring/refined/jsonschema"
	"github.com/reoring/refined/pickle"
	"github.com/reoring/refined/schema"
)

// asObject accepts Object and plain map[string]any values.
func asObject(v any) (Object, bool) {
	switch o := v.(type) {
	case Object:
		return o, true
	case map[string]any:
		return Object(o), true
	}
	return nil, false
}

type recordValidator struct {
	r    *schema.RecordValidator[Object]
	desc string
}

func (v recordValidator) Validate(x any) refined.Issues {
	o, ok := asObject(x)
	if !ok {
		return refined.Issues{{
			Path:    "/",
			Code:    refined.CodeInvalidType,
			Message: fmt.Sprintf("expected object got %T", x),
			Offset:  -1,
		}}
	}
	return v.r.Validate(o)
}

func (v recordValidator) JSONSchema() *js.Schema { return describe(v.r.JSONSchema(), v.desc) }

// presentValidator reports an absent (or null) field as required before the
// field's own validator sees it.
type presentValidator struct{ v schema.Validator[any] }

func (p presentValidator) Validate(x any) refined.Issues {
	if x == nil {
		return refined.Issues{{
			Path:    "/",
			Code:    refined.CodeRequired,
			Message: i18n.T(refined.CodeRequired, nil),
			Offset:  -1,
		}}
	}
	return p.v.Validate(x)
}

func (p presentValidator) JSONSchema() *js.Schema { return p.v.JSONSchema() }

type recordPickler struct {
	r    *pickle.RecordPickler[Object]
	desc string
}

func (p recordPickler) Decode(text string) (any, error) {
	o, err := p.r.Decode(text)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (p recordPickler) Encode(v any) string { return pickle.Render(p.EncodeNode(v)) }

func (p recordPickler) DecodeNode(n *refined.Node) (any, error) {
	o, err := p.r.DecodeNode(n)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (p recordPickler) EncodeNode(v any) *refined.Node {
	o, ok := asObject(v)
	if !ok {
		panic(fmt.Sprintf("catalog: record expects Object, got %T", v))
	}
	return p.r.EncodeNode(o)
}

func (p recordPickler) JSONSchema() *js.Schema { return describe(p.r.JSONSchema(), p.desc) }

func describe(s *js.Schema, desc string) *js.Schema {
	if desc != "" {
		s.Description = desc
	}
	return s
}
