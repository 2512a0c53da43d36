package skema

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/reoring/skema/internal/duration"
)

// tri is the predicate evaluator's three-valued result: a boolean
// coercion loses information and breaks conditional-type semantics.
type tri int

const (
	triFalse tri = iota
	triTrue
	triUndefined
)

func triFromBool(b bool) tri {
	if b {
		return triTrue
	}
	return triFalse
}

// evalPredicate evaluates a predicate AST node into a tri-valued result.
func evalPredicate(p *Predicate, scope *Scope) tri {
	if p == nil {
		return triUndefined
	}
	switch p.Kind {
	case PredNot:
		switch evalPredicate(p.Operand, scope) {
		case triTrue:
			return triFalse
		case triFalse:
			return triTrue
		default:
			return triUndefined
		}
	case PredAnd:
		// No short-circuit: both sides must resolve.
		l := evalPredicate(p.Left, scope)
		r := evalPredicate(p.Right, scope)
		if l == triUndefined || r == triUndefined {
			return triUndefined
		}
		return triFromBool(l == triTrue && r == triTrue)
	case PredOr:
		l := evalPredicate(p.Left, scope)
		r := evalPredicate(p.Right, scope)
		if l == triUndefined || r == triUndefined {
			return triUndefined
		}
		return triFromBool(l == triTrue || r == triTrue)
	case PredCompare:
		return evalCompare(p, scope)
	case PredMatches:
		return evalMatches(p, scope)
	case PredExpr:
		return evalPredicateFromExpr(p.Expr, scope)
	default:
		return triUndefined
	}
}

func evalCompare(p *Predicate, scope *Scope) tri {
	lr := evalExpr(p.CompareLeft, scope)
	rr := evalExpr(p.CompareRight, scope)
	if !lr.OK || !rr.OK {
		return triUndefined
	}
	lv, rv := lr.Value, rr.Value
	switch p.Op {
	case CompareEq:
		return triFromBool(strictEqual(lv, rv))
	case CompareNeq:
		return triFromBool(!strictEqual(lv, rv))
	default:
		return evalOrderedCompare(p.Op, lv, rv)
	}
}

func evalOrderedCompare(op CompareOp, lv, rv any) tri {
	if ln, lok := asNumber(lv); lok {
		if rn, rok := asNumber(rv); rok {
			return triFromBool(compareOrdered(op, numCompare(ln, rn)))
		}
	}
	ls, lok := lv.(string)
	rs, rok := rv.(string)
	if lok && rok {
		if lt, ok1 := duration.ParseTemporal(ls); ok1 {
			if rt, ok2 := duration.ParseTemporal(rs); ok2 {
				return triFromBool(compareOrdered(op, timeCompare(lt, rt)))
			}
		}
		return triFromBool(compareOrdered(op, strings.Compare(ls, rs)))
	}
	return triUndefined
}

func numCompare(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func timeCompare(l, r duration.Temporal) int {
	switch {
	case l.Time.Before(r.Time):
		return -1
	case l.Time.After(r.Time):
		return 1
	default:
		return 0
	}
}

func compareOrdered(op CompareOp, cmp int) bool {
	switch op {
	case CompareLt:
		return cmp < 0
	case CompareLte:
		return cmp <= 0
	case CompareGt:
		return cmp > 0
	case CompareGte:
		return cmp >= 0
	default:
		return false
	}
}

// strictEqual implements "same type, same scalar" equality with no numeric
// cross-type coercion beyond Go's own int64/float64 representation of JSON
// numbers.
func strictEqual(l, r any) bool {
	if l == nil || r == nil {
		return l == nil && r == nil
	}
	switch lv := l.(type) {
	case string:
		rv, ok := r.(string)
		return ok && lv == rv
	case bool:
		rv, ok := r.(bool)
		return ok && lv == rv
	case float64, int64, int:
		ln, lok := asNumber(l)
		rn, rok := asNumber(r)
		return lok && rok && ln == rn
	case []any:
		rv, ok := r.([]any)
		if !ok || len(lv) != len(rv) {
			return false
		}
		for i := range lv {
			if !strictEqual(lv[i], rv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		rv, ok := r.(map[string]any)
		if !ok || len(lv) != len(rv) {
			return false
		}
		for k, v := range lv {
			rvv, ok := rv[k]
			if !ok || !strictEqual(v, rvv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func evalMatches(p *Predicate, scope *Scope) tri {
	r := evalExpr(p.MatchExpr, scope)
	if !r.OK {
		return triUndefined
	}
	s, ok := r.Value.(string)
	if !ok {
		return triUndefined
	}
	re, err := compileInjectedPattern(p.MatchPattern, scope)
	if err != nil {
		return triUndefined
	}
	return triFromBool(re.MatchString(s))
}

// compileInjectedPattern injects scope variables into pattern and compiles
// the result, shared by the predicate evaluator's Matches and the validator
// body's regex rule.
func compileInjectedPattern(pattern string, scope *Scope) (*regexp.Regexp, error) {
	return regexp.Compile(injectVariables(pattern, scope))
}

// injectVariables substitutes every scope variable's textual form into the
// pattern wherever its name (prefixed with "$" if not already) occurs.
func injectVariables(pattern string, scope *Scope) string {
	for name, value := range scope.Variables {
		token := name
		if !strings.HasPrefix(token, "$") {
			token = "$" + token
		}
		pattern = strings.ReplaceAll(pattern, token, stringForm(value))
	}
	return pattern
}

func stringForm(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	default:
		if n, ok := asNumber(v); ok {
			return trimFloatString(n)
		}
		return ""
	}
}

func trimFloatString(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func evalPredicateFromExpr(e *Expr, scope *Scope) tri {
	r := evalExpr(e, scope)
	if !r.OK {
		return triUndefined
	}
	return triFromBool(coerceBool(r.Value))
}

func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		if n, ok := asNumber(v); ok {
			return n != 0
		}
		return false
	}
}

