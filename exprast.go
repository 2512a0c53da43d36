package skema

// ExprKind tags the variant of an Expr.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprEmptyArray
	ExprPath
	ExprUnaryArith
	ExprBinaryArith
	ExprCall
	ExprPredicate
)

// Expr is an expression AST node. Every variant shares one
// struct; Kind selects which fields are populated.
type Expr struct {
	Kind ExprKind

	// ExprLiteral: string, number (float64 or int64), duration literal
	// (carried as DurationMs), bool, or nil.
	Literal    any
	IsDuration bool
	DurationMs int64

	// ExprPath
	Path *PathExpr

	// ExprUnaryArith / ExprBinaryArith
	Op    string // "+", "-", "*", "/"
	Left  *Expr
	Right *Expr // unary uses Left only

	// ExprCall: nullary built-ins now(), midnight(), pi().
	FuncName string

	// ExprPredicate: a predicate-shaped expression (compare, not,
	// and/or, regex-match) lifted into a value.
	Predicate *Predicate
}

// PathRootKind is the root of a path expression.
type PathRootKind int

const (
	RootThis PathRootKind = iota
	RootParent
	RootRoot
	RootIdentifier
	RootVariable
)

// PathExpr is (rootKind, rootName?, segments[]).
type PathExpr struct {
	RootKind PathRootKind
	RootName string // used by RootIdentifier/RootVariable
	Segments []string
}
