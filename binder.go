package skema

// bindValidatorArgs binds a validator's ordered parameter list against a
// constraint's arguments, producing paramName -> value or failing. Any
// binding failure returns ok=false
// with exactly the one Issue already appended to iss; the caller emits no
// further error for this constraint.
func bindValidatorArgs(params []Parameter, con Constraint, scope *Scope, path Path, typeStack map[string]int) (bound map[string]any, iss Issues, ok bool) {
	bound = map[string]any{}

	switch {
	case con.UsesCallSyntax:
		seenNamed := false
		positional := 0
		for _, arg := range con.CallArgs {
			if arg.Name == "" {
				if seenNamed {
					return nil, AppendIssue(nil, path.String(),
						"Positional arguments must precede named arguments in a validator call.",
						CodeUnknownArgumentName, CategoryValidationError), false
				}
				if positional >= len(params) {
					return nil, AppendIssue(nil, path.String(),
						"Too many positional arguments for validator call.",
						CodeTooManyArguments, CategoryValidationError), false
				}
				param := params[positional]
				positional++
				val, failIss, failed := evalBoundArg(arg.Expr, scope, path)
				if failed {
					return nil, failIss, false
				}
				bound[param.Name] = val
				continue
			}
			seenNamed = true
			param, found := findParam(params, arg.Name)
			if !found {
				return nil, AppendIssue(nil, path.String(),
					"Unknown argument name \""+arg.Name+"\".",
					CodeUnknownArgumentName, CategoryValidationError), false
			}
			if _, already := bound[param.Name]; already {
				return nil, AppendIssue(nil, path.String(),
					"Argument \""+arg.Name+"\" bound more than once.",
					CodeDuplicateArgument, CategoryValidationError), false
			}
			val, failIss, failed := evalBoundArg(arg.Expr, scope, path)
			if failed {
				return nil, failIss, false
			}
			bound[param.Name] = val
		}

	case con.LegacyArg != nil && con.LegacyArg.List != nil:
		if len(con.LegacyArg.List) > len(params) {
			return nil, AppendIssue(nil, path.String(),
				"Too many arguments for validator call.",
				CodeTooManyArguments, CategoryValidationError), false
		}
		for i, e := range con.LegacyArg.List {
			val, failIss, failed := evalBoundArg(e, scope, path)
			if failed {
				return nil, failIss, false
			}
			bound[params[i].Name] = val
		}

	case con.LegacyArg != nil && con.LegacyArg.Single != nil:
		if len(params) == 0 {
			return nil, AppendIssue(nil, path.String(),
				"Too many arguments for validator call.",
				CodeTooManyArguments, CategoryValidationError), false
		}
		val, failIss, failed := evalBoundArg(con.LegacyArg.Single, scope, path)
		if failed {
			return nil, failIss, false
		}
		bound[params[0].Name] = val
	}

	for _, param := range params {
		if _, present := bound[param.Name]; present {
			continue
		}
		if param.Default == nil {
			return nil, AppendIssue(nil, path.String(),
				"Missing required argument \""+param.Name+"\".",
				CodeMissingArgument, CategoryValidationError), false
		}
		val, failIss, failed := evalBoundArg(param.Default, scope.WithVariables(bound), path)
		if failed {
			return nil, failIss, false
		}
		bound[param.Name] = val
	}

	return bound, nil, true
}

func findParam(params []Parameter, name string) (Parameter, bool) {
	for _, p := range params {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// evalBoundArg evaluates an argument/default expression, normalizing any
// failure to InvalidExpression/TypeError: a failure to evaluate an
// argument expression is a TypeError at the binder level.
func evalBoundArg(e *Expr, scope *Scope, path Path) (value any, iss Issues, failed bool) {
	r := evalExpr(e, scope)
	if !r.OK {
		return nil, AppendIssue(nil, path.String(),
			"Could not evaluate validator argument expression.",
			CodeInvalidExpression, CategoryTypeError), true
	}
	return r.Value, nil, false
}

// checkTypeHint runs the optional type-hint check: if a
// parameter's typeHint names a repository type, the bound value must
// satisfy it; unknown hints are silently tolerated.
func checkTypeHint(repo Repository, hint string, value any, path Path, typeStack map[string]int) Issues {
	if hint == "" {
		return nil
	}
	if _, ok := repo.Type(hint); !ok {
		return nil
	}
	if typeSatisfies(repo, hint, value, typeStack) {
		return nil
	}
	return AppendIssue(nil, path.String(),
		"Argument does not satisfy type hint \""+hint+"\".",
		CodeTypeMismatch, CategoryTypeError)
}
