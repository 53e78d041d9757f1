package refined

import (
	"math"
	"strconv"
	"time"

	eng "github.com/reoring/refined/internal/engine"
	js "github.com/reoring/refined/jsonschema"
)

// String returns the base for string values. Plain text is taken verbatim;
// structured input must be a string node.
func String() Underlying[string] { return stringBase{} }

// Int returns the base for integers. Plain text uses strconv.Atoi; structured
// input must be a number node without a fractional part.
func Int() Underlying[int] { return intBase{} }

// Float returns the base for float64 values. NaN and the infinities have no
// JSON number form and encode as null, which Float does not decode, so they
// do not survive a structured round trip.
func Float() Underlying[float64] { return floatBase{} }

// Bool returns the base for booleans. Plain text uses strconv.ParseBool.
func Bool() Underlying[bool] { return boolBase{} }

// Time returns the base for RFC3339 timestamps. Values are encoded in UTC, so
// a decoded value equals the original under time.Time.Equal but not under ==
// when the original carried another zone.
func Time() Underlying[time.Time] { return timeBase{} }

type stringBase struct{}

func (stringBase) TypeName() string                   { return "string" }
func (stringBase) ParseText(s string) (string, error) { return s, nil }
func (stringBase) FormatText(v string) string         { return v }
func (stringBase) EncodeNode(v string) *Node          { return eng.StringNode(v) }
func (stringBase) Violations(string) Issues           { return nil }
func (stringBase) Raw(v string) any                   { return v }
func (stringBase) JSONSchema() *js.Schema             { return &js.Schema{Type: "string"} }

func (stringBase) DecodeNode(n *Node) (string, error) {
	if n.Kind != eng.KindString {
		return "", ParseErrorOf(eng.Mismatch("string", n))
	}
	return n.String, nil
}

type intBase struct{}

func (intBase) TypeName() string        { return "int" }
func (intBase) FormatText(v int) string { return strconv.Itoa(v) }
func (intBase) EncodeNode(v int) *Node  { return eng.NumberNode(strconv.Itoa(v)) }
func (intBase) Violations(int) Issues   { return nil }
func (intBase) Raw(v int) any           { return v }
func (intBase) JSONSchema() *js.Schema  { return &js.Schema{Type: "integer"} }

func (intBase) ParseText(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, textParseError(err)
	}
	return v, nil
}

func (intBase) DecodeNode(n *Node) (int, error) {
	if n.Kind != eng.KindNumber {
		return 0, ParseErrorOf(eng.Mismatch("number", n))
	}
	v, err := strconv.Atoi(n.Number)
	if err != nil {
		return 0, ParseErrorOf(eng.Unexpected("integer", n.Number, n.Offset))
	}
	return v, nil
}

type floatBase struct{}

func (floatBase) TypeName() string            { return "float" }
func (floatBase) FormatText(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
func (floatBase) Violations(float64) Issues   { return nil }
func (floatBase) Raw(v float64) any           { return v }
func (floatBase) JSONSchema() *js.Schema      { return &js.Schema{Type: "number"} }

func (floatBase) ParseText(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, textParseError(err)
	}
	return v, nil
}

// EncodeNode renders NaN and infinities as null; JSON has no literal for them.
func (floatBase) EncodeNode(v float64) *Node {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return eng.NullNode()
	}
	return eng.NumberNode(strconv.FormatFloat(v, 'g', -1, 64))
}

func (floatBase) DecodeNode(n *Node) (float64, error) {
	if n.Kind != eng.KindNumber {
		return 0, ParseErrorOf(eng.Mismatch("number", n))
	}
	v, err := strconv.ParseFloat(n.Number, 64)
	if err != nil {
		return 0, ParseErrorOf(eng.Unexpected("float", n.Number, n.Offset))
	}
	return v, nil
}

type boolBase struct{}

func (boolBase) TypeName() string         { return "bool" }
func (boolBase) FormatText(v bool) string { return strconv.FormatBool(v) }
func (boolBase) EncodeNode(v bool) *Node  { return eng.BoolNode(v) }
func (boolBase) Violations(bool) Issues   { return nil }
func (boolBase) Raw(v bool) any           { return v }
func (boolBase) JSONSchema() *js.Schema   { return &js.Schema{Type: "boolean"} }

func (boolBase) ParseText(s string) (bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, textParseError(err)
	}
	return v, nil
}

func (boolBase) DecodeNode(n *Node) (bool, error) {
	if n.Kind != eng.KindBool {
		return false, ParseErrorOf(eng.Mismatch("boolean", n))
	}
	return n.Bool, nil
}

type timeBase struct{}

func (timeBase) TypeName() string              { return "time" }
func (timeBase) FormatText(v time.Time) string { return formatRFC3339Canonical(v) }
func (timeBase) Violations(time.Time) Issues   { return nil }
func (timeBase) Raw(v time.Time) any           { return v }

func (timeBase) JSONSchema() *js.Schema {
	return &js.Schema{Type: "string", Format: "date-time"}
}

func (timeBase) ParseText(s string) (time.Time, error) {
	t, err := parseRFC3339(s)
	if err != nil {
		return time.Time{}, textParseError(err)
	}
	return t, nil
}

func (timeBase) EncodeNode(v time.Time) *Node {
	return eng.StringNode(formatRFC3339Canonical(v))
}

func (timeBase) DecodeNode(n *Node) (time.Time, error) {
	if n.Kind != eng.KindString {
		return time.Time{}, ParseErrorOf(eng.Mismatch("string", n))
	}
	t, err := parseRFC3339(n.String)
	if err != nil {
		return time.Time{}, ParseErrorOf(eng.Unexpected("RFC3339 time", strconv.Quote(n.String), n.Offset))
	}
	return t, nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
