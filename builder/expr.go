package builder

import "github.com/reoring/skema"

// Lit builds a literal expression.
func Lit(v any) *skema.Expr {
	return &skema.Expr{Kind: skema.ExprLiteral, Literal: v}
}

// Dur builds a duration literal expression carrying an integer milliseconds
// value.
func Dur(ms int64) *skema.Expr {
	return &skema.Expr{Kind: skema.ExprLiteral, IsDuration: true, DurationMs: ms}
}

// EmptyArray builds the empty-array literal expression.
func EmptyArray() *skema.Expr {
	return &skema.Expr{Kind: skema.ExprEmptyArray}
}

// This builds a path expression rooted at the current scope value.
func This(segments ...string) *skema.Expr {
	return pathExpr(skema.RootThis, "", segments)
}

// Parent builds a path expression rooted at the enclosing scope value.
func Parent(segments ...string) *skema.Expr {
	return pathExpr(skema.RootParent, "", segments)
}

// RootValue builds a path expression rooted at the document root.
func RootValue(segments ...string) *skema.Expr {
	return pathExpr(skema.RootRoot, "", segments)
}

// Ident builds a path expression rooted at a field of the current scope.
func Ident(name string, segments ...string) *skema.Expr {
	return pathExpr(skema.RootIdentifier, name, segments)
}

// Var builds a path expression rooted at a scope variable.
func Var(name string, segments ...string) *skema.Expr {
	return pathExpr(skema.RootVariable, name, segments)
}

func pathExpr(kind skema.PathRootKind, name string, segments []string) *skema.Expr {
	return &skema.Expr{Kind: skema.ExprPath, Path: &skema.PathExpr{RootKind: kind, RootName: name, Segments: segments}}
}

// Add/Sub/Mul/Div build binary arithmetic expressions.
func Add(l, r *skema.Expr) *skema.Expr { return binaryArith("+", l, r) }
func Sub(l, r *skema.Expr) *skema.Expr { return binaryArith("-", l, r) }
func Mul(l, r *skema.Expr) *skema.Expr { return binaryArith("*", l, r) }
func Div(l, r *skema.Expr) *skema.Expr { return binaryArith("/", l, r) }

func binaryArith(op string, l, r *skema.Expr) *skema.Expr {
	return &skema.Expr{Kind: skema.ExprBinaryArith, Op: op, Left: l, Right: r}
}

// Neg builds a unary minus expression.
func Neg(e *skema.Expr) *skema.Expr {
	return &skema.Expr{Kind: skema.ExprUnaryArith, Op: "-", Left: e}
}

// Call builds a nullary function call expression (now, midnight, pi).
func Call(name string) *skema.Expr {
	return &skema.Expr{Kind: skema.ExprCall, FuncName: name}
}

// FromPredicate lifts a predicate into an expression value.
func FromPredicate(p *skema.Predicate) *skema.Expr {
	return &skema.Expr{Kind: skema.ExprPredicate, Predicate: p}
}

// Compare builds a comparison predicate.
func Compare(l *skema.Expr, op skema.CompareOp, r *skema.Expr) *skema.Predicate {
	return &skema.Predicate{Kind: skema.PredCompare, CompareLeft: l, Op: op, CompareRight: r}
}

// Eq/Neq/Lt/Lte/Gt/Gte are Compare convenience constructors.
func Eq(l, r *skema.Expr) *skema.Predicate  { return Compare(l, skema.CompareEq, r) }
func Neq(l, r *skema.Expr) *skema.Predicate { return Compare(l, skema.CompareNeq, r) }
func Lt(l, r *skema.Expr) *skema.Predicate  { return Compare(l, skema.CompareLt, r) }
func Lte(l, r *skema.Expr) *skema.Predicate { return Compare(l, skema.CompareLte, r) }
func Gt(l, r *skema.Expr) *skema.Predicate  { return Compare(l, skema.CompareGt, r) }
func Gte(l, r *skema.Expr) *skema.Predicate { return Compare(l, skema.CompareGte, r) }

// Not/And/Or build logical predicates.
func Not(p *skema.Predicate) *skema.Predicate { return &skema.Predicate{Kind: skema.PredNot, Operand: p} }
func And(l, r *skema.Predicate) *skema.Predicate {
	return &skema.Predicate{Kind: skema.PredAnd, Left: l, Right: r}
}
func Or(l, r *skema.Predicate) *skema.Predicate {
	return &skema.Predicate{Kind: skema.PredOr, Left: l, Right: r}
}

// Matches builds a regex-match predicate.
func Matches(expr *skema.Expr, pattern string) *skema.Predicate {
	return &skema.Predicate{Kind: skema.PredMatches, MatchExpr: expr, MatchPattern: pattern}
}

// Truthy lifts any other expression into a predicate via boolean coercion.
func Truthy(e *skema.Expr) *skema.Predicate {
	return &skema.Predicate{Kind: skema.PredExpr, Expr: e}
}
