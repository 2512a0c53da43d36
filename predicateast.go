package skema

// PredicateKind tags the variant of a Predicate.
type PredicateKind int

const (
	PredNot PredicateKind = iota
	PredAnd
	PredOr
	PredCompare
	PredMatches
	PredExpr
)

// CompareOp is one of the comparison operators available in predicates.
type CompareOp int

const (
	CompareEq CompareOp = iota
	CompareNeq
	CompareLt
	CompareLte
	CompareGt
	CompareGte
)

// Predicate is a boolean predicate AST node. Every variant
// shares one struct; Kind selects which fields are populated.
type Predicate struct {
	Kind PredicateKind

	// PredNot
	Operand *Predicate

	// PredAnd / PredOr
	Left  *Predicate
	Right *Predicate

	// PredCompare
	CompareLeft  *Expr
	Op           CompareOp
	CompareRight *Expr

	// PredMatches
	MatchExpr    *Expr
	MatchPattern string

	// PredExpr: any other expression, evaluated and coerced to boolean.
	Expr *Expr
}
