package skema

import (
	"math"

	"github.com/reoring/skema/internal/duration"
	"github.com/reoring/skema/internal/valueshape"
)

// evalResult is the expression evaluator's (ok, value, code?) triple,
// preferred over a mutable scratch field.
type evalResult struct {
	OK    bool
	Value any
	Code  Code
}

func evalOK(v any) evalResult { return evalResult{OK: true, Value: v} }
func evalFail(code Code) evalResult { return evalResult{OK: false, Code: code} }

// evalExpr evaluates an expression AST node to a value or failure.
func evalExpr(e *Expr, scope *Scope) evalResult {
	if e == nil {
		return evalFail(CodeInvalidExpression)
	}
	switch e.Kind {
	case ExprLiteral:
		if e.IsDuration {
			return evalOK(e.DurationMs)
		}
		return evalOK(e.Literal)
	case ExprEmptyArray:
		return evalOK([]any{})
	case ExprPath:
		return evalPath(e.Path, scope)
	case ExprUnaryArith:
		return evalUnaryArith(e, scope)
	case ExprBinaryArith:
		return evalBinaryArith(e, scope)
	case ExprCall:
		return evalCall(e)
	case ExprPredicate:
		tri := evalPredicate(e.Predicate, scope)
		switch tri {
		case triTrue:
			return evalOK(true)
		case triFalse:
			return evalOK(false)
		default:
			return evalFail(CodeInvalidExpression)
		}
	default:
		return evalFail(CodeInvalidExpression)
	}
}

func evalUnaryArith(e *Expr, scope *Scope) evalResult {
	operand := evalExpr(e.Left, scope)
	if !operand.OK {
		return evalFail(CodeInvalidArithmetic)
	}
	n, ok := asNumber(operand.Value)
	if !ok {
		if ms, ok2 := duration.Coerce(operand.Value); ok2 {
			n = float64(ms)
		} else {
			return evalFail(CodeInvalidArithmetic)
		}
	}
	switch e.Op {
	case "+":
		return evalOK(n)
	case "-":
		return evalOK(-n)
	default:
		return evalFail(CodeInvalidArithmetic)
	}
}

func evalBinaryArith(e *Expr, scope *Scope) evalResult {
	lr := evalExpr(e.Left, scope)
	if !lr.OK {
		return evalFail(CodeInvalidArithmetic)
	}
	rr := evalExpr(e.Right, scope)
	if !rr.OK {
		return evalFail(CodeInvalidArithmetic)
	}
	lv, rv := lr.Value, rr.Value

	// Two float64 numbers are always plain arithmetic; duration/temporal
	// handling only kicks in once a string or int64 (duration) operand is
	// in play, otherwise e.g. 2.5 * 3 would get mistaken for a duration
	// scale.
	if hasDurationOperand(lv, rv) {
		if v, ok := tryTemporalArith(e.Op, lv, rv); ok {
			return evalOK(v)
		}
		if (e.Op == "+" || e.Op == "-") {
			if v, ok := tryDurationDuration(e.Op, lv, rv); ok {
				return evalOK(v)
			}
		}
		if (e.Op == "*" || e.Op == "/") {
			if v, ok, failed := tryDurationScale(e.Op, lv, rv); failed {
				return evalFail(CodeInvalidArithmetic)
			} else if ok {
				return evalOK(v)
			}
		}
	}

	ln, lok := asNumber(lv)
	rn, rok := asNumber(rv)
	if !lok || !rok {
		return evalFail(CodeInvalidArithmetic)
	}
	switch e.Op {
	case "+":
		return evalOK(ln + rn)
	case "-":
		return evalOK(ln - rn)
	case "*":
		return evalOK(ln * rn)
	case "/":
		if rn == 0 {
			return evalFail(CodeInvalidArithmetic)
		}
		return evalOK(ln / rn)
	default:
		return evalFail(CodeInvalidArithmetic)
	}
}

// hasDurationOperand reports whether either operand can carry a duration or
// temporal value: a string, or an int64 (the form duration literals and
// temporal differences evaluate to; decoded JSON numbers are float64).
func hasDurationOperand(lv, rv any) bool {
	return isDurationOperand(lv) || isDurationOperand(rv)
}

func isDurationOperand(v any) bool {
	switch v.(type) {
	case string, int64:
		return true
	default:
		return false
	}
}

// tryTemporalArith handles "temporal ± duration".
func tryTemporalArith(op string, lv, rv any) (any, bool) {
	if op != "+" && op != "-" {
		return nil, false
	}
	ls, ok := lv.(string)
	if !ok {
		return nil, false
	}
	lt, ok := duration.ParseTemporal(ls)
	if !ok {
		return nil, false
	}
	if op == "-" {
		if rs, ok := rv.(string); ok {
			if rt, ok := duration.ParseTemporal(rs); ok && rt.Kind == lt.Kind {
				return lt.DiffMs(rt), true
			}
		}
	}
	if ms, ok := duration.Coerce(rv); ok {
		sign := int64(1)
		if op == "-" {
			sign = -1
		}
		return lt.Shift(sign * ms).Format(), true
	}
	return nil, false
}

// tryDurationDuration handles "duration ± duration".
func tryDurationDuration(op string, lv, rv any) (any, bool) {
	lms, lok := duration.Coerce(lv)
	rms, rok := duration.Coerce(rv)
	if !lok || !rok {
		return nil, false
	}
	if op == "+" {
		return lms + rms, true
	}
	return lms - rms, true
}

// tryDurationScale handles "duration * number" / "duration / number". The
// third return value, failed, distinguishes "not a
// duration/number shape" (caller falls back to plain numeric arithmetic)
// from "is the shape, but division by zero" (caller must fail).
func tryDurationScale(op string, lv, rv any) (value any, ok bool, failed bool) {
	var durMs int64
	var scalar float64
	switch {
	case isDurationOperand(lv):
		ms, okc := duration.Coerce(lv)
		n, okn := asNumber(rv)
		if !okc || !okn {
			return nil, false, false
		}
		durMs, scalar = ms, n
	case isDurationOperand(rv):
		ms, okc := duration.Coerce(rv)
		n, okn := asNumber(lv)
		if !okc || !okn {
			return nil, false, false
		}
		if op == "/" {
			// number / duration is not a documented shape; let the
			// caller fall through to plain numeric handling.
			return nil, false, false
		}
		durMs, scalar = ms, n
	default:
		return nil, false, false
	}
	switch op {
	case "*":
		return int64(math.Round(float64(durMs) * scalar)), true, false
	case "/":
		if scalar == 0 {
			return nil, false, true
		}
		return int64(math.Round(float64(durMs) / scalar)), true, false
	default:
		return nil, false, false
	}
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func asNumber(v any) (float64, bool) {
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

func evalCall(e *Expr) evalResult {
	switch e.FuncName {
	case "now":
		return evalOK(duration.Now())
	case "midnight":
		return evalOK(duration.Midnight())
	case "pi":
		return evalOK(math.Pi)
	default:
		return evalFail(CodeInvalidExpression)
	}
}

// evalPath resolves a path expression against the scope.
func evalPath(p *PathExpr, scope *Scope) evalResult {
	if p == nil {
		return evalFail(CodeInvalidExpression)
	}
	var current any
	switch p.RootKind {
	case RootThis:
		current = scope.Current
	case RootParent:
		if !scope.HasParent {
			return evalFail(CodeParentUndefined)
		}
		current = scope.Parent
	case RootRoot:
		current = scope.Root
	case RootIdentifier:
		v, _ := valueshape.Lookup(scope.Current, p.RootName)
		current = v
	case RootVariable:
		if v, ok := scope.Variables[p.RootName]; ok {
			current = v
		} else if v, ok := scope.Variables[trimDollar(p.RootName)]; ok {
			current = v
		} else {
			current = nil
		}
	default:
		return evalFail(CodeInvalidExpression)
	}
	for _, seg := range p.Segments {
		v, ok := valueshape.Lookup(current, seg)
		if !ok {
			current = nil
			continue
		}
		current = v
	}
	return evalOK(current)
}

func trimDollar(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name[1:]
	}
	return name
}
