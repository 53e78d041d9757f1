package engine

import (
	"errors"
	"fmt"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Node kinds reuse the opening token kinds for containers.
const (
	KindObject = KindBeginObject
	KindArray  = KindBeginArray
)

// Token represents a streaming token. Offset is the byte index where the
// token starts in the input (-1 when unknown).
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Error codes surfaced by the engine. They match the public issue codes.
const (
	CodeParseError   = "parse_error"
	CodeInvalidType  = "invalid_type"
	CodeDuplicateKey = "duplicate_key"
)

// Error is a structural failure raised while reading or type-checking a tree.
// Message is final and is surfaced to callers unmodified.
type Error struct {
	Code    string
	Message string
	Offset  int64
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// KindName returns the structural name of a node kind as used in messages.
func KindName(k Kind) string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Mismatch reports that n is not of the expected structural kind.
func Mismatch(expected string, n *Node) *Error {
	return Unexpected(expected, KindName(n.Kind), n.Offset)
}

// Unexpected reports a node whose value does not fit the expected shape.
func Unexpected(expected, got string, offset int64) *Error {
	return &Error{
		Code:    CodeInvalidType,
		Message: fmt.Sprintf("expected %s got %s at index %d", expected, got, offset),
		Offset:  offset,
	}
}

// ParseTree consumes the whole source and builds a Node tree. Trailing
// values after the root are rejected.
func ParseTree(src TokenSource) (*Node, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, readError(src, err)
	}
	n, err := decodeValue(src, tok)
	if err != nil {
		return nil, err
	}
	next, err := src.NextToken()
	if err == nil {
		return nil, &Error{
			Code:    CodeParseError,
			Message: fmt.Sprintf("unexpected trailing input at index %d", next.Offset),
			Offset:  next.Offset,
		}
	}
	if !errors.Is(err, io.EOF) {
		return nil, readError(src, err)
	}
	return n, nil
}

func readError(src TokenSource, err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}
	off := src.Location()
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &Error{Code: CodeParseError, Message: fmt.Sprintf("unexpected end of input at index %d", off), Offset: off, Cause: err}
	}
	return &Error{Code: CodeParseError, Message: fmt.Sprintf("%s at index %d", err.Error(), off), Offset: off, Cause: err}
}

func decodeValue(src TokenSource, tok Token) (*Node, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, tok.Offset)
	case KindBeginArray:
		return decodeArray(src, tok.Offset)
	case KindString:
		return &Node{Kind: KindString, String: tok.String, Offset: tok.Offset}, nil
	case KindNumber:
		return &Node{Kind: KindNumber, Number: tok.Number, Offset: tok.Offset}, nil
	case KindBool:
		return &Node{Kind: KindBool, Bool: tok.Bool, Offset: tok.Offset}, nil
	case KindNull:
		return &Node{Kind: KindNull, Offset: tok.Offset}, nil
	default:
		return nil, &Error{Code: CodeParseError, Message: fmt.Sprintf("unexpected token at index %d", tok.Offset), Offset: tok.Offset}
	}
}

func decodeObject(src TokenSource, offset int64) (*Node, error) {
	n := &Node{Kind: KindObject, Offset: offset}
	seen := map[string]struct{}{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, readError(src, err)
		}
		if tok.Kind == KindEndObject {
			return n, nil
		}
		if tok.Kind != KindKey {
			return nil, &Error{Code: CodeParseError, Message: fmt.Sprintf("expected key at index %d", tok.Offset), Offset: tok.Offset}
		}
		if _, dup := seen[tok.String]; dup {
			return nil, &Error{Code: CodeDuplicateKey, Message: fmt.Sprintf("duplicate key %q at index %d", tok.String, tok.Offset), Offset: tok.Offset}
		}
		seen[tok.String] = struct{}{}
		vt, err := src.NextToken()
		if err != nil {
			return nil, readError(src, err)
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		n.Members = append(n.Members, Member{Key: tok.String, KeyOffset: tok.Offset, Value: v})
	}
}

func decodeArray(src TokenSource, offset int64) (*Node, error) {
	n := &Node{Kind: KindArray, Offset: offset}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, readError(src, err)
		}
		if tok.Kind == KindEndArray {
			return n, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, v)
	}
}
