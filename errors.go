package refined

import (
	"errors"
	"fmt"
	"strings"

	eng "github.com/reoring/refined/internal/engine"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeValidation   = "validation"
	CodeInvalidType  = eng.CodeInvalidType
	CodeParseError   = eng.CodeParseError
	CodeDuplicateKey = eng.CodeDuplicateKey
	CodeRequired     = "required"
	CodeUnknownKey   = "unknown_key"
)

// Sentinels matched with errors.Is.
var (
	ErrValidation = errors.New("refined: validation failed")
	ErrParse      = errors.New("refined: malformed input")
	ErrDecode     = errors.New("refined: decode failed")
)

// Issue represents a single violation.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	// Value is the raw primitive that failed a predicate. It is nil for
	// structural issues.
	Value any
	// Rule optionally records the predicate name that produced this issue.
	Rule   string
	Offset int64 // Byte offset in the input (-1 when unknown).
	Cause  error
}

// Issues is a collection of violations that implements error. A nil or empty
// Issues means the value is valid.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s: %s", it.Code, it.Path, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Valid reports whether no issue was recorded.
func (iss Issues) Valid() bool { return len(iss) == 0 }

// Rebase prefixes every issue path with the given pointer segment.
func (iss Issues) Rebase(segment string) Issues {
	if len(iss) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		it.Path = Rebase(segment, it.Path)
		out[i] = it
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var df *DecodeFailure
	if errors.As(err, &df) {
		return df.Issues(), true
	}
	return nil, false
}

// ValidationError reports a predicate that returned false.
type ValidationError struct {
	Type    string // Definition name.
	Rule    string
	Message string
	Value   any // Raw primitive that was rejected.
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Issue converts the error into an Issue rooted at "/".
func (e *ValidationError) Issue() Issue {
	return Issue{Path: "/", Code: CodeValidation, Message: e.Message, Value: e.Value, Rule: e.Rule, Offset: -1}
}

// ParseError reports malformed or ill-typed input. Message comes from the
// primitive parser or the structured-format engine and is never rewritten.
type ParseError struct {
	Code    string
	Message string
	Offset  int64
	Cause   error
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Cause}
}

// Issue converts the error into an Issue rooted at "/".
func (e *ParseError) Issue() Issue {
	return Issue{Path: "/", Code: e.Code, Message: e.Message, Offset: e.Offset, Cause: e.Cause}
}

// ParseErrorOf converts a structured-format engine error (or any other error)
// into a ParseError, keeping its message verbatim.
func ParseErrorOf(err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	var ee *eng.Error
	if errors.As(err, &ee) {
		return &ParseError{Code: ee.Code, Message: ee.Message, Offset: ee.Offset, Cause: ee.Cause}
	}
	return &ParseError{Code: CodeParseError, Message: err.Error(), Offset: -1, Cause: err}
}

// textParseError wraps a primitive text parser failure.
func textParseError(err error) *ParseError {
	return &ParseError{Code: CodeParseError, Message: err.Error(), Offset: -1, Cause: err}
}

// DecodeFailure is the failure half of every derived decoder. Input is the
// original text handed to the decoder; Path locates the failing field for
// composite values ("" for scalars).
type DecodeFailure struct {
	Input string
	Path  string
	Err   error
}

func (f *DecodeFailure) Error() string {
	if f.Path == "" || f.Path == "/" {
		return f.Message()
	}
	return f.Path + ": " + f.Message()
}

// Message returns the underlying error message.
func (f *DecodeFailure) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

func (f *DecodeFailure) Unwrap() []error { return []error{ErrDecode, f.Err} }

// Rebase returns a copy whose path is nested under segment.
func (f *DecodeFailure) Rebase(segment string) *DecodeFailure {
	out := *f
	out.Path = Rebase(segment, f.Path)
	return &out
}

// Issues projects the failure into the uniform issue model.
func (f *DecodeFailure) Issues() Issues {
	var it Issue
	var ve *ValidationError
	var pe *ParseError
	switch {
	case errors.As(f.Err, &ve):
		it = ve.Issue()
	case errors.As(f.Err, &pe):
		it = pe.Issue()
	default:
		it = Issue{Code: CodeParseError, Message: f.Message(), Offset: -1, Cause: f.Err}
	}
	it.Path = f.Path
	if it.Path == "" {
		it.Path = "/"
	}
	return Issues{it}
}

// Fail wraps err as a DecodeFailure for input. A DecodeFailure produced by a
// nested decoder keeps its path and receives the outer input.
func Fail(input string, err error) *DecodeFailure {
	var df *DecodeFailure
	if errors.As(err, &df) {
		out := *df
		out.Input = input
		return &out
	}
	return &DecodeFailure{Input: input, Err: err}
}

// AsDecodeFailure extracts a DecodeFailure from err.
func AsDecodeFailure(err error) (*DecodeFailure, bool) {
	var df *DecodeFailure
	if errors.As(err, &df) {
		return df, true
	}
	return nil, false
}
