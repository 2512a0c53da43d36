package skema

import "github.com/reoring/skema/internal/valueshape"

const maxTypeRecursionDepth = 64

// matchType dispatches on the kind of type expression, accumulates
// violations into the returned Issues,
// and returns them. A local failure never prevents sibling validation
// (collect-all semantics) except where further traversal has no meaning.
func matchType(repo Repository, expr *TypeExpr, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case KindAbsent:
		return AppendIssue(nil, path.String(), "Value must be absent.", CodeFieldMustBeAbsent, CategoryValidationError)

	case KindLiteral:
		if !strictEqual(value, expr.Literal) {
			return AppendIssue(nil, path.String(), "Value does not match the expected literal.", defaultCode, defaultCategory)
		}
		return nil

	case KindNamed:
		return matchNamed(repo, expr.Name, expr.Constraints, value, scope, path, typeStack)

	case KindNullableNamed:
		if value == nil {
			return nil
		}
		return matchNamed(repo, expr.Name, nil, value, scope, path, typeStack)

	case KindNullable:
		if value == nil {
			return nil
		}
		return matchType(repo, expr.Inner, value, scope, path, typeStack)

	case KindArray:
		return matchArray(repo, expr, value, scope, path, typeStack)

	case KindRecord:
		return matchRecord(repo, expr, value, scope, path, typeStack)

	case KindDict:
		return matchDict(repo, expr, value, scope, path, typeStack)

	case KindUnion:
		return matchUnion(repo, expr, value, scope, path, typeStack)

	case KindIntersection:
		var iss Issues
		for _, item := range expr.Items {
			iss = append(iss, matchType(repo, item, value, scope, path, typeStack)...)
		}
		return iss

	case KindConditional:
		return matchConditional(repo, expr, value, scope, path, typeStack)

	default:
		return nil
	}
}

func matchNamed(repo Repository, name string, constraints []Constraint, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	def, found := repo.Type(name)
	if !found {
		return AppendIssue(nil, path.String(), "Unknown type \""+name+"\".", CodeUnknownType, CategoryTypeError)
	}

	var iss Issues
	switch t := def.(type) {
	case BuiltinType:
		if !t.Matches(value) {
			iss = AppendIssue(iss, path.String(), "Value does not match type \""+name+"\".", defaultCode, defaultCategory)
		}
	case UserType:
		typeStack[name]++
		depth := typeStack[name]
		if depth > maxTypeRecursionDepth {
			typeStack[name]--
			return AppendIssue(nil, path.String(), "Type recursion depth limit exceeded while resolving \""+name+"\".", defaultCode, defaultCategory)
		}
		iss = matchType(repo, t.Expr, value, scope, path, typeStack)
		typeStack[name]--
	}

	if len(constraints) > 0 {
		iss = append(iss, applyConstraints(repo, constraints, name, value, scope, path, typeStack)...)
	}
	return iss
}

func matchArray(repo Repository, expr *TypeExpr, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	arr, ok := valueshape.AsArray(value)
	if !ok {
		return AppendIssue(nil, path.String(), "Expected an array.", defaultCode, defaultCategory)
	}
	var iss Issues
	for i, item := range arr {
		childScope := scope.Child(item)
		iss = append(iss, matchType(repo, expr.Item, item, childScope, path.Index(i), typeStack)...)
	}
	iss = append(iss, applyConstraints(repo, expr.Constraints, "Array", value, scope, path, typeStack)...)
	return iss
}

func matchRecord(repo Repository, expr *TypeExpr, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	obj, ok := valueshape.AsObject(value)
	if !ok {
		return AppendIssue(nil, path.String(), "Expected an object.", defaultCode, defaultCategory)
	}
	var iss Issues
	declared := make(map[string]bool, len(expr.Fields))
	for _, field := range expr.Fields {
		declared[field.Name] = true
		iss = append(iss, matchField(repo, field, scope, obj, path, typeStack)...)
	}
	for _, key := range valueshape.SortedKeys(obj) {
		if declared[key] {
			continue
		}
		iss = AppendIssue(iss, path.Field(key).String(), "Unexpected field \""+key+"\".", CodeUnknownField, CategorySemanticError)
	}
	return iss
}

// matchField checks presence and the "must be absent" case, then recurses
// into the field's type. All of a record's fields share the same
// record-child scope (so "this" keeps resolving to the enclosing record
// throughout every field's constraints, letting one field's expressions
// reference a sibling by plain path); only the value being matched changes
// per field, threaded as matchType's separate value argument.
func matchField(repo Repository, field Field, recordScope *Scope, record map[string]any, recordPath Path, typeStack map[string]int) Issues {
	fieldPath := recordPath.Field(field.Name)
	value, present := record[field.Name]
	if !present {
		if field.Optional || field.Default != nil || admitsAbsence(repo, field.Type, recordScope, typeStack) {
			return nil
		}
		return AppendIssue(nil, fieldPath.String(), "Field \""+field.Name+"\" is required.", CodeFieldMissing, CategoryValidationError)
	}
	if field.Type != nil && field.Type.Kind == KindAbsent {
		return AppendIssue(nil, fieldPath.String(), "Field \""+field.Name+"\" must be absent.", CodeFieldMustBeAbsent, CategoryValidationError)
	}
	return matchType(repo, field.Type, value, recordScope, fieldPath, typeStack)
}

func matchDict(repo Repository, expr *TypeExpr, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	obj, ok := valueshape.AsObject(value)
	if !ok {
		return AppendIssue(nil, path.String(), "Expected an object.", defaultCode, defaultCategory)
	}
	var iss Issues
	for _, key := range valueshape.SortedKeys(obj) {
		keyScope := scope.Child(key)
		iss = append(iss, matchType(repo, expr.KeyType, key, keyScope, path.DictKey(key), typeStack)...)
		val := obj[key]
		valScope := scope.Child(val)
		iss = append(iss, matchType(repo, expr.ValueType, val, valScope, path.Field(key), typeStack)...)
	}
	return iss
}

func matchUnion(repo Repository, expr *TypeExpr, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	for _, item := range expr.Items {
		if len(matchType(repo, item, value, scope, path, cloneTypeStack(typeStack))) == 0 {
			return nil
		}
	}
	return AppendIssue(nil, path.String(), "Value does not match any union branch.", defaultCode, defaultCategory)
}

func matchConditional(repo Repository, expr *TypeExpr, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	switch evalPredicate(expr.Condition, scope) {
	case triTrue:
		return matchType(repo, expr.Then, value, scope, path, typeStack)
	case triFalse:
		return matchType(repo, expr.Else, value, scope, path, typeStack)
	default:
		thenIss := matchType(repo, expr.Then, value, scope, path, cloneTypeStack(typeStack))
		if len(thenIss) == 0 {
			return nil
		}
		elseIss := matchType(repo, expr.Else, value, scope, path, cloneTypeStack(typeStack))
		if len(elseIss) == 0 {
			return nil
		}
		return AppendIssue(nil, path.String(), "Value does not satisfy conditional type.", defaultCode, defaultCategory)
	}
}

// admitsAbsence is the structural "admits absence" check, reusing the
// matcher's per-type-name recursion bound.
func admitsAbsence(repo Repository, expr *TypeExpr, scope *Scope, typeStack map[string]int) bool {
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case KindAbsent:
		return true
	case KindUnion:
		for _, item := range expr.Items {
			if admitsAbsence(repo, item, scope, typeStack) {
				return true
			}
		}
		return false
	case KindIntersection:
		for _, item := range expr.Items {
			if !admitsAbsence(repo, item, scope, typeStack) {
				return false
			}
		}
		return true
	case KindConditional:
		switch evalPredicate(expr.Condition, scope) {
		case triTrue:
			return admitsAbsence(repo, expr.Then, scope, typeStack)
		case triFalse:
			return admitsAbsence(repo, expr.Else, scope, typeStack)
		default:
			return admitsAbsence(repo, expr.Then, scope, typeStack) || admitsAbsence(repo, expr.Else, scope, typeStack)
		}
	case KindNamed:
		def, found := repo.Type(expr.Name)
		if !found {
			return false
		}
		ut, ok := def.(UserType)
		if !ok {
			return false
		}
		typeStack[expr.Name]++
		depth := typeStack[expr.Name]
		defer func() { typeStack[expr.Name]-- }()
		if depth > maxTypeRecursionDepth {
			return false
		}
		return admitsAbsence(repo, ut.Expr, scope, typeStack)
	default:
		return false
	}
}

// typeSatisfies runs the matcher with a throwaway error buffer and recursion
// stack, used by the validator argument binder's optional type-hint check.
func typeSatisfies(repo Repository, typeName string, value any, typeStack map[string]int) bool {
	def, found := repo.Type(typeName)
	if !found {
		return false
	}
	switch t := def.(type) {
	case BuiltinType:
		return t.Matches(value)
	case UserType:
		scope := NewRootScope(value)
		iss := matchType(repo, t.Expr, value, scope, RootPath, cloneTypeStack(typeStack))
		return len(iss) == 0
	default:
		return false
	}
}

func cloneTypeStack(ts map[string]int) map[string]int {
	clone := make(map[string]int, len(ts))
	for k, v := range ts {
		clone[k] = v
	}
	return clone
}
