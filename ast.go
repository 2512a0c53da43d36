package skema

// TypeExprKind tags the variant of a TypeExpr, per the closed, tagged-union
// convention used throughout this engine's AST types.
type TypeExprKind int

const (
	KindAbsent TypeExprKind = iota
	KindLiteral
	KindNamed
	KindNullableNamed
	KindNullable
	KindArray
	KindRecord
	KindDict
	KindUnion
	KindIntersection
	KindConditional
)

// TypeExpr is a node in the type expression tree. Every variant is
// represented on one struct, discriminated by Kind; callers switch on Kind
// and read only the fields that variant populates.
type TypeExpr struct {
	Kind TypeExprKind

	// KindLiteral
	Literal any

	// KindNamed: the referenced type name plus constraints to apply after
	// delegation.
	Name        string
	Constraints []Constraint

	// KindNullableNamed reuses Name (no Constraints).

	// KindNullable: the wrapped expression.
	Inner *TypeExpr

	// KindArray
	Item *TypeExpr

	// KindRecord
	Fields []Field

	// KindDict
	KeyType   *TypeExpr
	ValueType *TypeExpr

	// KindUnion / KindIntersection
	Items []*TypeExpr

	// KindConditional
	Condition *Predicate
	Then      *TypeExpr
	Else      *TypeExpr
}

// Field is (name, type, optional, default?). A default is never
// materialized into the value; it only excuses absence.
type Field struct {
	Name     string
	Type     *TypeExpr
	Optional bool
	Default  *Expr // nil means no default
}

// Constraint is a named check attached to a type, resolved against a
// validator in the repository.
type Constraint struct {
	Name          string
	Negated       bool
	UsesCallSyntax bool

	// CallArgs is populated when UsesCallSyntax is true.
	CallArgs []Argument

	// LegacyArg is populated when UsesCallSyntax is false: either a single
	// expression or a list-shaped expression (an ArgShape carrying either
	// one or many).
	LegacyArg *ArgShape
}

// Argument is a call-syntax argument: an optional name plus its expression.
type Argument struct {
	Name string // empty means positional
	Expr *Expr
}

// ArgShape carries a legacy (non-call) constraint argument, which may be a
// single expression or a list of expressions.
type ArgShape struct {
	Single *Expr
	List   []*Expr
}
