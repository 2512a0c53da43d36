package builder

import "github.com/reoring/skema"

// Absent builds an Absent type expression: the value must not be present.
func Absent() *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindAbsent}
}

// Literal builds a Literal type expression requiring strict equality with l.
func Literal(l any) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindLiteral, Literal: l}
}

// Named builds a Named type expression delegating to name and applying
// constraints afterward.
func Named(name string, constraints ...skema.Constraint) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindNamed, Name: name, Constraints: constraints}
}

// NullableNamed builds a NullableNamed type expression: null or delegate.
func NullableNamed(name string) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindNullableNamed, Name: name}
}

// Nullable wraps an arbitrary type expression: null or delegate to inner.
func Nullable(inner *skema.TypeExpr) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindNullable, Inner: inner}
}

// Array builds an Array type expression: every item matches item, and
// constraints apply to the array itself (target type "Array").
func Array(item *skema.TypeExpr, constraints ...skema.Constraint) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindArray, Item: item, Constraints: constraints}
}

// Record builds a Record type expression with a closed field set.
func Record(fields ...skema.Field) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindRecord, Fields: fields}
}

// Dict builds a Dict type expression over homogeneous key/value types.
func Dict(keyType, valueType *skema.TypeExpr) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindDict, KeyType: keyType, ValueType: valueType}
}

// Union builds a Union type expression: value must match at least one item.
func Union(items ...*skema.TypeExpr) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindUnion, Items: items}
}

// Intersection builds an Intersection type expression: value must match
// every item.
func Intersection(items ...*skema.TypeExpr) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindIntersection, Items: items}
}

// Conditional builds a Conditional type expression: branch chosen by cond.
func Conditional(cond *skema.Predicate, then, els *skema.TypeExpr) *skema.TypeExpr {
	return &skema.TypeExpr{Kind: skema.KindConditional, Condition: cond, Then: then, Else: els}
}

// FieldOpt configures an optional Field property.
type FieldOpt func(*skema.Field)

// Optional marks a field as optional.
func Optional(f *skema.Field) { f.Optional = true }

// Default attaches a default expression, which excuses absence without
// materializing into the value.
func Default(expr *skema.Expr) FieldOpt {
	return func(f *skema.Field) { f.Default = expr }
}

// F builds a record field.
func F(name string, t *skema.TypeExpr, opts ...FieldOpt) skema.Field {
	f := skema.Field{Name: name, Type: t}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Con builds a constraint using legacy single-argument syntax (or none, if
// arg is nil).
func Con(name string, arg *skema.Expr) skema.Constraint {
	c := skema.Constraint{Name: name}
	if arg != nil {
		c.LegacyArg = &skema.ArgShape{Single: arg}
	}
	return c
}

// ConNegated is Con with the negation flag set.
func ConNegated(name string, arg *skema.Expr) skema.Constraint {
	c := Con(name, arg)
	c.Negated = true
	return c
}

// ConCall builds a constraint using call syntax with the given arguments.
func ConCall(name string, args ...skema.Argument) skema.Constraint {
	return skema.Constraint{Name: name, UsesCallSyntax: true, CallArgs: args}
}

// Pos builds a positional call-syntax argument.
func Pos(expr *skema.Expr) skema.Argument {
	return skema.Argument{Expr: expr}
}

// NamedArg builds a call-syntax argument bound by parameter name.
func NamedArg(name string, expr *skema.Expr) skema.Argument {
	return skema.Argument{Name: name, Expr: expr}
}
