package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/refined/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	data       []byte
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON. Each token
// records the byte index where it starts.
func NewBytes(b []byte) eng.TokenSource {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &jsonSource{data: b, dec: dec, lastOffset: 0}
}

// NewString is NewBytes for string input.
func NewString(s string) eng.TokenSource { return NewBytes([]byte(s)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	prev := s.dec.InputOffset()
	tok, err := s.dec.Token()
	if err != nil {
		s.lastOffset = s.startAt(prev)
		if se, ok := err.(*json.SyntaxError); ok {
			s.lastOffset = se.Offset
		}
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	start := s.startAt(prev)
	s.lastOffset = start

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: start}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: start}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: start}, nil
		case ']':
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: start}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: start}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: start}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: start}, nil
	case json.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: start}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: formatFloat(v), Offset: start}, nil
	case nil:
		s.valueDone()
		return eng.Token{Kind: eng.KindNull, Offset: start}, nil
	}

	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Offset: start}, nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }

// pop closes the current container; the container itself completes a value
// in its parent.
func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

// startAt skips whitespace and separators from off and returns the index of
// the next significant byte.
func (s *jsonSource) startAt(off int64) int64 {
	i := off
	for i < int64(len(s.data)) {
		switch s.data[i] {
		case ' ', '\t', '\r', '\n', ',', ':':
			i++
			continue
		}
		break
	}
	return i
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
