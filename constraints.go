package skema

import "fmt"

// applyConstraints attempts every constraint in source order regardless of
// previous outcomes.
func applyConstraints(repo Repository, constraints []Constraint, targetType string, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	var iss Issues
	for _, con := range constraints {
		iss = append(iss, applyConstraint(repo, con, targetType, value, scope, path, typeStack)...)
	}
	return iss
}

func applyConstraint(repo Repository, con Constraint, targetType string, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	def, found := repo.Validator(targetType, con.Name)
	if !found {
		return AppendIssue(nil, path.String(), "Unknown constraint \""+con.Name+"\" for type \""+targetType+"\".", CodeUnknownConstraint, CategorySemanticError)
	}
	switch v := def.(type) {
	case BuiltinValidator:
		return applyBuiltinValidator(v, con, value, scope, path)
	case UserValidator:
		return applyUserValidator(repo, v, con, value, scope, path, typeStack)
	default:
		return nil
	}
}

// applyBuiltinValidator runs a built-in validator's Evaluate function and
// applies negation to its result.
func applyBuiltinValidator(v BuiltinValidator, con Constraint, value any, scope *Scope, path Path) Issues {
	arg, hasArg, iss := resolveBuiltinArg(con, scope, path)
	if iss != nil {
		return iss
	}
	if v.RequiresArgument && !hasArg {
		return AppendIssue(nil, path.String(), "Constraint \""+con.Name+"\" requires an argument.", CodeMissingArgument, CategoryValidationError)
	}
	result, ok := v.Evaluate(value, arg, hasArg)
	if !ok {
		return AppendIssue(nil, path.String(), "Constraint \""+con.Name+"\" is not supported for current value.", CodeConstraintViolation, CategoryValidationError)
	}
	if con.Negated {
		result = !result
	}
	if result {
		return nil
	}
	return AppendIssue(nil, path.String(), fmt.Sprintf("Constraint %q failed: expected %v against %v.", con.Name, value, arg), CodeConstraintViolation, CategoryValidationError)
}

func resolveBuiltinArg(con Constraint, scope *Scope, path Path) (arg any, hasArg bool, failIss Issues) {
	if con.UsesCallSyntax {
		if len(con.CallArgs) > 1 {
			return nil, false, AppendIssue(nil, path.String(), "Too many arguments for constraint \""+con.Name+"\".", CodeTooManyArguments, CategoryValidationError)
		}
		if len(con.CallArgs) == 0 {
			return nil, false, nil
		}
		a := con.CallArgs[0]
		if a.Name != "" {
			return nil, false, AppendIssue(nil, path.String(), "Unknown argument name \""+a.Name+"\" for constraint \""+con.Name+"\".", CodeUnknownArgumentName, CategoryValidationError)
		}
		r := evalExpr(a.Expr, scope)
		if !r.OK {
			return nil, false, AppendIssue(nil, path.String(), "Could not evaluate constraint argument expression.", r.Code, CategoryTypeError)
		}
		return r.Value, true, nil
	}
	if con.LegacyArg == nil {
		return nil, false, nil
	}
	if con.LegacyArg.Single != nil {
		r := evalExpr(con.LegacyArg.Single, scope)
		if !r.OK {
			return nil, false, AppendIssue(nil, path.String(), "Could not evaluate constraint argument expression.", r.Code, CategoryTypeError)
		}
		return r.Value, true, nil
	}
	vals := make([]any, 0, len(con.LegacyArg.List))
	for _, e := range con.LegacyArg.List {
		r := evalExpr(e, scope)
		if !r.OK {
			return nil, false, AppendIssue(nil, path.String(), "Could not evaluate constraint argument expression.", r.Code, CategoryTypeError)
		}
		vals = append(vals, r.Value)
	}
	return vals, true, nil
}

// applyUserValidator binds the validator's parameters, checks any type
// hints, evaluates its body against a child scope, and applies negation.
func applyUserValidator(repo Repository, v UserValidator, con Constraint, value any, scope *Scope, path Path, typeStack map[string]int) Issues {
	bound, iss, ok := bindValidatorArgs(v.Params, con, scope, path, typeStack)
	if !ok {
		return iss
	}
	for _, p := range v.Params {
		if hintIss := checkTypeHint(repo, p.TypeHint, bound[p.Name], path, typeStack); len(hintIss) > 0 {
			return hintIss
		}
	}

	validatorScope := scope.ValidatorScope(value, bound)
	result, defined := evalValidatorBody(v.Body, validatorScope)
	if !defined {
		return AppendIssue(nil, path.String(), "Validator cannot be evaluated by current runtime.", CodeValidatorFailed, CategoryValidationError)
	}
	if con.Negated {
		result = !result
	}
	if result {
		return nil
	}
	msg := v.Body.Message
	if msg == "" {
		msg = fmt.Sprintf("Validator %q failed.", fmt.Sprintf("%s(%s)", v.TargetType, v.Name))
	}
	return AppendIssue(nil, path.String(), msg, CodeValidatorFailed, CategoryValidationError)
}

// evalValidatorBody evaluates a validator body. The second return value is
// false when the body is undefined for this scope
// (regex compile failure, unresolved predicate).
func evalValidatorBody(body ValidatorBody, scope *Scope) (result bool, defined bool) {
	switch body.Kind {
	case BodyRegex, BodyObjectRegex:
		s, isString := scope.Current.(string)
		if !isString {
			return false, true
		}
		re, err := compileInjectedPattern(body.Pattern, scope)
		if err != nil {
			return false, false
		}
		matched := re.MatchString(s)
		if body.Negated {
			matched = !matched
		}
		return matched, true
	case BodyPredicate, BodyObjectPredicate:
		switch evalPredicate(body.Predicate, scope) {
		case triTrue:
			return true, true
		case triFalse:
			return false, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}
