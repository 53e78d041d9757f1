package refined

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/constraints"

	js "github.com/reoring/refined/jsonschema"
)

// Number is the set of numeric underlying types accepted by range predicates.
type Number interface {
	constraints.Integer | constraints.Float
}

// Predicate is a pure validity check plus the message reported when it
// fails. Check must be deterministic: it runs on every construction, schema
// validation and decode without memoization.
type Predicate[T any] struct {
	Name    string
	Message string
	Check   func(T) bool

	annotate func(*js.Schema)
}

// Rule builds a custom predicate.
func Rule[T any](name, message string, check func(T) bool) Predicate[T] {
	return Predicate[T]{Name: name, Message: message, Check: check}
}

// WithMessage returns a copy of p reporting msg on failure.
func (p Predicate[T]) WithMessage(msg string) Predicate[T] {
	p.Message = msg
	return p
}

// Annotate projects the predicate onto a schema node: constraint keywords
// for builtins and one x-validations entry.
func (p Predicate[T]) Annotate(s *js.Schema) {
	if p.annotate != nil {
		p.annotate(s)
	}
	s.AttachValidation(p.Name, p.Message)
}

// NonEmpty rejects the empty string.
func NonEmpty() Predicate[string] {
	return Predicate[string]{
		Name:     "nonEmpty",
		Message:  "String must not be empty",
		Check:    func(s string) bool { return s != "" },
		annotate: func(s *js.Schema) { s.MinLength = intPtr(1) },
	}
}

// NotBlank rejects strings made of whitespace only.
func NotBlank() Predicate[string] {
	return Rule("notBlank", "String must not be blank", func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

// MinLength requires at least n runes.
func MinLength(n int) Predicate[string] {
	return Predicate[string]{
		Name:     "minLength",
		Message:  fmt.Sprintf("String must be at least %d characters", n),
		Check:    func(s string) bool { return utf8.RuneCountInString(s) >= n },
		annotate: func(s *js.Schema) { s.MinLength = intPtr(n) },
	}
}

// MaxLength allows at most n runes.
func MaxLength(n int) Predicate[string] {
	return Predicate[string]{
		Name:     "maxLength",
		Message:  fmt.Sprintf("String must be at most %d characters", n),
		Check:    func(s string) bool { return utf8.RuneCountInString(s) <= n },
		annotate: func(s *js.Schema) { s.MaxLength = intPtr(n) },
	}
}

// Matches requires re to match the string.
func Matches(re *regexp.Regexp) Predicate[string] {
	return Predicate[string]{
		Name:     "pattern",
		Message:  fmt.Sprintf("String must match pattern %s", re.String()),
		Check:    re.MatchString,
		annotate: func(s *js.Schema) { s.Pattern = re.String() },
	}
}

// OneOf restricts the value to an enumeration.
func OneOf[T comparable](values ...T) Predicate[T] {
	allowed := make(map[T]struct{}, len(values))
	enum := make([]any, 0, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
		enum = append(enum, v)
	}
	return Predicate[T]{
		Name:    "oneOf",
		Message: fmt.Sprintf("Value must be one of %v", values),
		Check: func(v T) bool {
			_, ok := allowed[v]
			return ok
		},
		annotate: func(s *js.Schema) { s.Enum = enum },
	}
}

// Min requires v >= n.
func Min[T Number](n T) Predicate[T] {
	return Predicate[T]{
		Name:     "min",
		Message:  fmt.Sprintf("Value must be greater than or equal to %v", n),
		Check:    func(v T) bool { return v >= n },
		annotate: func(s *js.Schema) { s.Minimum = floatPtr(float64(n)) },
	}
}

// Max requires v <= n.
func Max[T Number](n T) Predicate[T] {
	return Predicate[T]{
		Name:     "max",
		Message:  fmt.Sprintf("Value must be less than or equal to %v", n),
		Check:    func(v T) bool { return v <= n },
		annotate: func(s *js.Schema) { s.Maximum = floatPtr(float64(n)) },
	}
}

// Between requires lo <= v <= hi.
func Between[T Number](lo, hi T) Predicate[T] {
	return Predicate[T]{
		Name:    "between",
		Message: fmt.Sprintf("Value must be between %v and %v", lo, hi),
		Check:   func(v T) bool { return v >= lo && v <= hi },
		annotate: func(s *js.Schema) {
			s.Minimum = floatPtr(float64(lo))
			s.Maximum = floatPtr(float64(hi))
		},
	}
}

// Positive requires v > 0.
func Positive[T Number]() Predicate[T] {
	return Predicate[T]{
		Name:     "positive",
		Message:  "Value must be positive",
		Check:    func(v T) bool { return v > 0 },
		annotate: func(s *js.Schema) { s.ExclusiveMinimum = floatPtr(0) },
	}
}

// NonNegative requires v >= 0.
func NonNegative[T Number]() Predicate[T] {
	return Predicate[T]{
		Name:     "nonNegative",
		Message:  "Value must not be negative",
		Check:    func(v T) bool { return v >= 0 },
		annotate: func(s *js.Schema) { s.Minimum = floatPtr(0) },
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
