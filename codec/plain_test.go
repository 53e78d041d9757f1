package codec_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/reoring/refined"
	"github.com/reoring/refined/codec"
)

type slugTag struct{}

type Slug = refined.Wrapped[string, slugTag]

var slugDef = refined.NewtypeOf[slugTag]("Slug", refined.String(), refined.NonEmpty(), refined.MaxLength(8))

type Count int

var countDef = refined.IntSubtype[Count]("Count")

type Ratio float64

var ratioDef = refined.FloatSubtype[Ratio]("Ratio", refined.Between(0.0, 1.0))

func TestPlain_DecodeValid(t *testing.T) {
	c := codec.Plain[Slug](slugDef)
	v, err := c.Decode("hello")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Value() != "hello" || c.Encode(v) != "hello" {
		t.Fatalf("round trip mismatch: %q", c.Encode(v))
	}
	if c.TypeName() != "Slug" {
		t.Fatalf("type name = %q", c.TypeName())
	}
}

func TestPlain_PredicateFailure(t *testing.T) {
	_, err := codec.Plain[Slug](slugDef).Decode("")
	df, ok := refined.AsDecodeFailure(err)
	if !ok {
		t.Fatalf("expected *DecodeFailure, got %T", err)
	}
	if df.Message() != "String must not be empty" || df.Input != "" {
		t.Fatalf("unexpected failure: %+v", df)
	}
	if !errors.Is(err, refined.ErrValidation) {
		t.Fatalf("expected validation failure")
	}
}

func TestPlain_IntParseFailureCarriesNumError(t *testing.T) {
	_, err := codec.Plain[Count](countDef).Decode("nope")
	df, ok := refined.AsDecodeFailure(err)
	if !ok || df.Input != "nope" {
		t.Fatalf("expected failure for input nope, got %v", err)
	}
	var pe *refined.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", df.Err)
	}
	var ne *strconv.NumError
	if !errors.As(err, &ne) || ne.Func != "Atoi" {
		t.Fatalf("expected Atoi number-format error, got %v", err)
	}
	if errors.Is(err, refined.ErrValidation) {
		t.Fatalf("a parse failure must not look like a validation failure")
	}
}

func TestPlain_RoundTrip(t *testing.T) {
	cases := []string{"0", "42", "-7"}
	c := codec.Plain[Count](countDef)
	for _, in := range cases {
		v, err := c.Decode(in)
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		if got := c.Encode(v); got != in {
			t.Fatalf("encode(decode(%q)) = %q", in, got)
		}
	}

	r := codec.Plain[Ratio](ratioDef)
	v, err := r.Decode("0.25")
	if err != nil || r.Encode(v) != "0.25" {
		t.Fatalf("ratio round trip: %v %q", err, r.Encode(v))
	}
	if _, err := r.Decode("1.5"); !errors.Is(err, refined.ErrValidation) {
		t.Fatalf("expected range failure, got %v", err)
	}
}

func TestPlain_Time(t *testing.T) {
	c := codec.Plain[time.Time](refined.Time())
	v, err := c.Decode("2025-03-01T12:00:00+01:00")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := c.Encode(v); got != "2025-03-01T11:00:00Z" {
		t.Fatalf("encode = %q", got)
	}
}

func TestDelimited(t *testing.T) {
	c := codec.Delimited(",", codec.Plain[Count](countDef))
	vs, err := c.Decode("1,2,3")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(vs) != 3 || vs[2] != 3 {
		t.Fatalf("unexpected values: %v", vs)
	}
	if c.Encode(vs) != "1,2,3" || c.TypeName() != "[]Count" {
		t.Fatalf("unexpected encode/type: %q %q", c.Encode(vs), c.TypeName())
	}

	empty, err := c.Decode("")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty input should decode to an empty slice: %v %v", empty, err)
	}

	_, err = c.Decode("1,x,3")
	df, ok := refined.AsDecodeFailure(err)
	if !ok {
		t.Fatalf("expected *DecodeFailure, got %T", err)
	}
	if df.Input != "1,x,3" || df.Path != "/1" {
		t.Fatalf("unexpected failure: %+v", df)
	}
	iss := df.Issues()
	if len(iss) != 1 || iss[0].Code != refined.CodeParseError || iss[0].Path != "/1" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestDelimited_EmptySeparatorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	codec.Delimited("", codec.Plain[Count](countDef))
}
