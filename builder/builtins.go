package builder

import (
	"regexp"

	"github.com/reoring/skema"
	"github.com/reoring/skema/internal/duration"
)

// Builtins returns a starter repository of built-in types and constraints,
// grounded in the constraint surface implied by the worked scenarios of
// this engine's specification: numeric/string bounds, pattern matching, and
// enumeration.
func Builtins() *Repository {
	b := NewRepository()

	b.Type("String", skema.BuiltinType{Name: "String", Matches: isString})
	b.Type("Int", skema.BuiltinType{Name: "Int", Matches: isInt})
	b.Type("Float", skema.BuiltinType{Name: "Float", Matches: isFloat})
	b.Type("Bool", skema.BuiltinType{Name: "Bool", Matches: isBool})
	b.Type("Date", skema.BuiltinType{Name: "Date", Matches: isDate})
	b.Type("DateTime", skema.BuiltinType{Name: "DateTime", Matches: isDateTime})

	b.Validator("Int", "min", skema.BuiltinValidator{Name: "min", TargetType: "Int", RequiresArgument: true, Evaluate: evalMin})
	b.Validator("Float", "min", skema.BuiltinValidator{Name: "min", TargetType: "Float", RequiresArgument: true, Evaluate: evalMin})
	b.Validator("DateTime", "min", skema.BuiltinValidator{Name: "min", TargetType: "DateTime", RequiresArgument: true, Evaluate: evalTemporalMin})
	b.Validator("Date", "min", skema.BuiltinValidator{Name: "min", TargetType: "Date", RequiresArgument: true, Evaluate: evalTemporalMin})

	b.Validator("Int", "max", skema.BuiltinValidator{Name: "max", TargetType: "Int", RequiresArgument: true, Evaluate: evalMax})
	b.Validator("Float", "max", skema.BuiltinValidator{Name: "max", TargetType: "Float", RequiresArgument: true, Evaluate: evalMax})
	b.Validator("DateTime", "max", skema.BuiltinValidator{Name: "max", TargetType: "DateTime", RequiresArgument: true, Evaluate: evalTemporalMax})
	b.Validator("Date", "max", skema.BuiltinValidator{Name: "max", TargetType: "Date", RequiresArgument: true, Evaluate: evalTemporalMax})

	b.Validator("String", "minLength", skema.BuiltinValidator{Name: "minLength", TargetType: "String", RequiresArgument: true, Evaluate: evalMinLength})
	b.Validator("Array", "minLength", skema.BuiltinValidator{Name: "minLength", TargetType: "Array", RequiresArgument: true, Evaluate: evalMinLength})
	b.Validator("String", "maxLength", skema.BuiltinValidator{Name: "maxLength", TargetType: "String", RequiresArgument: true, Evaluate: evalMaxLength})
	b.Validator("Array", "maxLength", skema.BuiltinValidator{Name: "maxLength", TargetType: "Array", RequiresArgument: true, Evaluate: evalMaxLength})

	b.Validator("String", "pattern", skema.BuiltinValidator{Name: "pattern", TargetType: "String", RequiresArgument: true, Evaluate: evalPattern})
	b.Validator("String", "enum", skema.BuiltinValidator{Name: "enum", TargetType: "String", RequiresArgument: true, Evaluate: evalEnum})
	b.Validator("Int", "enum", skema.BuiltinValidator{Name: "enum", TargetType: "Int", RequiresArgument: true, Evaluate: evalEnum})

	return b
}

func isString(v any) bool { _, ok := v.(string); return ok }
func isBool(v any) bool   { _, ok := v.(bool); return ok }

func isFloat(v any) bool {
	switch v.(type) {
	case float64, int64, int:
		return true
	default:
		return false
	}
}

func isInt(v any) bool {
	switch n := v.(type) {
	case int64, int:
		return true
	case float64:
		return n == float64(int64(n))
	default:
		return false
	}
}

func isDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	t, ok := duration.ParseTemporal(s)
	return ok && t.Kind == duration.KindDate
}

func isDateTime(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, ok = duration.ParseTemporal(s)
	return ok
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func evalMin(value, argument any, hasArgument bool) (bool, bool) {
	v, ok1 := numericValue(value)
	a, ok2 := numericValue(argument)
	if !ok1 || !ok2 {
		return false, false
	}
	return v >= a, true
}

func evalMax(value, argument any, hasArgument bool) (bool, bool) {
	v, ok1 := numericValue(value)
	a, ok2 := numericValue(argument)
	if !ok1 || !ok2 {
		return false, false
	}
	return v <= a, true
}

func evalTemporalMin(value, argument any, hasArgument bool) (bool, bool) {
	return compareTemporalBound(value, argument, func(cmp int) bool { return cmp >= 0 })
}

func evalTemporalMax(value, argument any, hasArgument bool) (bool, bool) {
	return compareTemporalBound(value, argument, func(cmp int) bool { return cmp <= 0 })
}

func compareTemporalBound(value, argument any, accept func(int) bool) (bool, bool) {
	vs, ok1 := value.(string)
	as, ok2 := argument.(string)
	if !ok1 || !ok2 {
		return false, false
	}
	vt, ok1 := duration.ParseTemporal(vs)
	at, ok2 := duration.ParseTemporal(as)
	if !ok1 || !ok2 {
		return false, false
	}
	switch {
	case vt.Time.Before(at.Time):
		return accept(-1), true
	case vt.Time.After(at.Time):
		return accept(1), true
	default:
		return accept(0), true
	}
}

func evalMinLength(value, argument any, hasArgument bool) (bool, bool) {
	n, ok1 := length(value)
	a, ok2 := numericValue(argument)
	if !ok1 || !ok2 {
		return false, false
	}
	return float64(n) >= a, true
}

func evalMaxLength(value, argument any, hasArgument bool) (bool, bool) {
	n, ok1 := length(value)
	a, ok2 := numericValue(argument)
	if !ok1 || !ok2 {
		return false, false
	}
	return float64(n) <= a, true
}

func length(v any) (int, bool) {
	switch t := v.(type) {
	case string:
		return len([]rune(t)), true
	case []any:
		return len(t), true
	default:
		return 0, false
	}
}

func evalPattern(value, argument any, hasArgument bool) (bool, bool) {
	s, ok1 := value.(string)
	pat, ok2 := argument.(string)
	if !ok1 || !ok2 {
		return false, false
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return false, false
	}
	return re.MatchString(s), true
}

func evalEnum(value, argument any, hasArgument bool) (bool, bool) {
	list, ok := argument.([]any)
	if !ok {
		list = []any{argument}
	}
	for _, item := range list {
		if skemaDeepEqual(value, item) {
			return true, true
		}
	}
	return false, true
}

func skemaDeepEqual(a, b any) bool {
	an, aok := numericValue(a)
	bn, bok := numericValue(b)
	if aok && bok {
		return an == bn
	}
	return a == b
}
