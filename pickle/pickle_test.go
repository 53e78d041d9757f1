package pickle_test

import (
	"errors"
	"testing"

	"github.com/reoring/refined"
	"github.com/reoring/refined/pickle"
)

type nonEmptyTag struct{}

type NonEmptyString = refined.Wrapped[string, nonEmptyTag]

var nonEmptyDef = refined.NewtypeOf[nonEmptyTag]("NonEmptyString", refined.String(), refined.NonEmpty())

type Count int

var countDef = refined.IntSubtype[Count]("Count")

func TestScalar_StringWrapper(t *testing.T) {
	p := pickle.Derive[NonEmptyString](nonEmptyDef)

	v, err := p.Decode(`"hello"`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Value() != "hello" {
		t.Fatalf("value = %q", v.Value())
	}
	if got := p.Encode(v); got != `"hello"` {
		t.Fatalf("encode = %s", got)
	}

	_, err = p.Decode(`""`)
	df, ok := refined.AsDecodeFailure(err)
	if !ok {
		t.Fatalf("expected *DecodeFailure, got %T", err)
	}
	if df.Error() != "String must not be empty" || df.Input != `""` {
		t.Fatalf("unexpected failure: %q input=%q", df.Error(), df.Input)
	}
}

func TestScalar_IntWrapper(t *testing.T) {
	p := pickle.Derive[Count](countDef)

	v, err := p.Decode("1")
	if err != nil || v != 1 {
		t.Fatalf("decode: %v %v", v, err)
	}

	_, err = p.Decode("true")
	if err == nil {
		t.Fatalf("expected failure")
	}
	if err.Error() != "expected number got boolean at index 0" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	var pe *refined.ParseError
	if !errors.As(err, &pe) || pe.Code != refined.CodeInvalidType || pe.Offset != 0 {
		t.Fatalf("unexpected parse error: %#v", pe)
	}
}

func TestScalar_OffsetsSkipWhitespace(t *testing.T) {
	_, err := pickle.Derive[Count](countDef).Decode("  \"7\"")
	if err == nil || err.Error() != "expected number got string at index 2" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code string
	}{
		{"empty", "", refined.CodeParseError},
		{"truncated", `{"a":`, refined.CodeParseError},
		{"trailing", `1 2`, refined.CodeParseError},
		{"duplicate", `{"a":1,"a":2}`, refined.CodeDuplicateKey},
		{"invalid utf-8", "\"a\xffb\"", refined.CodeParseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pickle.Parse(tt.in)
			var pe *refined.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Code != tt.code {
				t.Fatalf("code = %s, want %s (%s)", pe.Code, tt.code, pe.Message)
			}
		})
	}
}

func TestDecode_RejectsInvalidUTF8(t *testing.T) {
	p := pickle.Derive[NonEmptyString](nonEmptyDef)
	_, err := p.Decode("\"ok\xc3\"")
	if err == nil {
		t.Fatalf("expected failure on invalid UTF-8")
	}
	if !errors.Is(err, refined.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	df, ok := refined.AsDecodeFailure(err)
	if !ok {
		t.Fatalf("expected *DecodeFailure, got %T", err)
	}
	if df.Message() != "invalid UTF-8 at index 3" {
		t.Fatalf("unexpected message: %q", df.Message())
	}
}

func TestParse_DuplicateKeyMessage(t *testing.T) {
	_, err := pickle.Parse(`{"a":1,"a":2}`)
	if err == nil || err.Error() != `duplicate key "a" at index 7` {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSlice(t *testing.T) {
	p := pickle.Slice(pickle.Derive[NonEmptyString](nonEmptyDef))
	vs, err := p.Decode(`["a", "b"]`)
	if err != nil || len(vs) != 2 || vs[1].Value() != "b" {
		t.Fatalf("decode: %v %v", vs, err)
	}
	if got := p.Encode(vs); got != `["a","b"]` {
		t.Fatalf("encode = %s", got)
	}

	_, err = p.Decode(`["a", ""]`)
	df, ok := refined.AsDecodeFailure(err)
	if !ok || df.Path != "/1" || df.Message() != "String must not be empty" {
		t.Fatalf("unexpected failure: %v", err)
	}

	_, err = p.Decode(`{"a":1}`)
	if err == nil || err.Error() != "expected array got object at index 0" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEncode_EscapesStrings(t *testing.T) {
	p := pickle.Derive[string](refined.String())
	if got := p.Encode("a\"b\n"); got != `"a\"b\n"` {
		t.Fatalf("encode = %s", got)
	}
	v, err := p.Decode(`"a\"b\n"`)
	if err != nil || v != "a\"b\n" {
		t.Fatalf("decode: %q %v", v, err)
	}
}

func TestJSONSchema_Scalar(t *testing.T) {
	s := pickle.Derive[NonEmptyString](nonEmptyDef).JSONSchema()
	if s.Type != "string" || s.Title != "NonEmptyString" || *s.MinLength != 1 {
		t.Fatalf("unexpected schema: %+v", s)
	}
	if len(s.Validations) != 1 || s.Validations[0].Message != "String must not be empty" {
		t.Fatalf("unexpected validations: %+v", s.Validations)
	}
}
