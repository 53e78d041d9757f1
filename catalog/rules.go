package catalog

import (
	"fmt"
	"math"
	"regexp"

	"github.com/reoring/refined"
)

// buildRule turns a rule declaration into a predicate over the primitive at the root
// of the type's base chain.
func buildRule(prim string, rs RuleDecl) (refined.Predicate[any], error) {
	var (
		p   refined.Predicate[any]
		err error
	)
	switch prim {
	case baseString:
		var sp refined.Predicate[string]
		sp, err = stringRule(rs)
		p = refined.ErasePredicate(sp)
	case baseInt:
		var ip refined.Predicate[int]
		ip, err = numberRule(rs, prim, toInt)
		p = refined.ErasePredicate(ip)
	case baseFloat:
		var fp refined.Predicate[float64]
		fp, err = numberRule(rs, prim, toFloat)
		p = refined.ErasePredicate(fp)
	default:
		err = unknownRule(rs.Rule, prim)
	}
	if err != nil {
		return refined.Predicate[any]{}, err
	}
	if rs.Message != "" {
		p = p.WithMessage(rs.Message)
	}
	return p, nil
}

func stringRule(rs RuleDecl) (refined.Predicate[string], error) {
	switch rs.Rule {
	case "nonEmpty":
		return refined.NonEmpty(), nil
	case "notBlank":
		return refined.NotBlank(), nil
	case "minLength", "maxLength":
		n, err := toInt(rs.Value)
		if err != nil {
			return refined.Predicate[string]{}, ruleArg(rs, err)
		}
		if rs.Rule == "minLength" {
			return refined.MinLength(n), nil
		}
		return refined.MaxLength(n), nil
	case "pattern":
		s, ok := rs.Value.(string)
		if !ok {
			return refined.Predicate[string]{}, ruleArg(rs, fmt.Errorf("expected a pattern string, got %T", rs.Value))
		}
		re, err := regexp.Compile(s)
		if err != nil {
			return refined.Predicate[string]{}, ruleArg(rs, err)
		}
		return refined.Matches(re), nil
	case "oneOf":
		vs, err := list(rs.Value, func(v any) (string, error) {
			s, ok := v.(string)
			if !ok {
				return "", fmt.Errorf("expected string, got %T", v)
			}
			return s, nil
		})
		if err != nil {
			return refined.Predicate[string]{}, ruleArg(rs, err)
		}
		return refined.OneOf(vs...), nil
	}
	return refined.Predicate[string]{}, unknownRule(rs.Rule, baseString)
}

func numberRule[T refined.Number](rs RuleDecl, prim string, conv func(any) (T, error)) (refined.Predicate[T], error) {
	var zero refined.Predicate[T]
	switch rs.Rule {
	case "positive":
		return refined.Positive[T](), nil
	case "nonNegative":
		return refined.NonNegative[T](), nil
	case "min", "max":
		n, err := conv(rs.Value)
		if err != nil {
			return zero, ruleArg(rs, err)
		}
		if rs.Rule == "min" {
			return refined.Min(n), nil
		}
		return refined.Max(n), nil
	case "between":
		vs, err := list(rs.Value, conv)
		if err != nil {
			return zero, ruleArg(rs, err)
		}
		if len(vs) != 2 || vs[0] > vs[1] {
			return zero, ruleArg(rs, fmt.Errorf("expected [lo, hi], got %v", rs.Value))
		}
		return refined.Between(vs[0], vs[1]), nil
	case "oneOf":
		vs, err := list(rs.Value, conv)
		if err != nil {
			return zero, ruleArg(rs, err)
		}
		return refined.OneOf(vs...), nil
	}
	return zero, unknownRule(rs.Rule, prim)
}

func list[T any](v any, conv func(any) (T, error)) ([]T, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		t, err := conv(it)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %v", v)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("expected number, got %v", v)
}

func unknownRule(rule, prim string) error {
	return fmt.Errorf("%w: %q for base %s", ErrUnknownRule, rule, prim)
}

func ruleArg(rs RuleDecl, err error) error {
	return fmt.Errorf("rule %s: %w", rs.Rule, err)
}
