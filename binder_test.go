package skema

import "testing"

func callArg(name string, e *Expr) Argument { return Argument{Name: name, Expr: e} }

func TestBindValidatorArgsPositional(t *testing.T) {
	params := []Parameter{{Name: "min"}, {Name: "max"}}
	con := Constraint{UsesCallSyntax: true, CallArgs: []Argument{callArg("", lit(1.0)), callArg("", lit(10.0))}}
	bound, iss, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if !ok || len(iss) != 0 {
		t.Fatalf("expected binding to succeed, got iss=%v", iss)
	}
	if bound["min"] != 1.0 || bound["max"] != 10.0 {
		t.Fatalf("unexpected bound args: %v", bound)
	}
}

func TestBindValidatorArgsNamed(t *testing.T) {
	params := []Parameter{{Name: "min"}, {Name: "max"}}
	con := Constraint{UsesCallSyntax: true, CallArgs: []Argument{callArg("max", lit(10.0)), callArg("min", lit(1.0))}}
	bound, _, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if !ok || bound["min"] != 1.0 || bound["max"] != 10.0 {
		t.Fatalf("unexpected binding: %v", bound)
	}
}

func TestBindValidatorArgsPositionalAfterNamedFails(t *testing.T) {
	params := []Parameter{{Name: "min"}, {Name: "max"}}
	con := Constraint{UsesCallSyntax: true, CallArgs: []Argument{callArg("min", lit(1.0)), callArg("", lit(10.0))}}
	_, iss, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if ok || len(iss) != 1 || iss[0].Code != CodeUnknownArgumentName {
		t.Fatalf("expected a positional-after-named failure, got ok=%v iss=%v", ok, iss)
	}
}

func TestBindValidatorArgsTooManyPositional(t *testing.T) {
	params := []Parameter{{Name: "min"}}
	con := Constraint{UsesCallSyntax: true, CallArgs: []Argument{callArg("", lit(1.0)), callArg("", lit(2.0))}}
	_, iss, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if ok || len(iss) != 1 || iss[0].Code != CodeTooManyArguments {
		t.Fatalf("expected TooManyArguments, got ok=%v iss=%v", ok, iss)
	}
}

func TestBindValidatorArgsUnknownArgumentName(t *testing.T) {
	params := []Parameter{{Name: "min"}}
	con := Constraint{UsesCallSyntax: true, CallArgs: []Argument{callArg("bogus", lit(1.0))}}
	_, iss, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if ok || len(iss) != 1 || iss[0].Code != CodeUnknownArgumentName {
		t.Fatalf("expected UnknownArgumentName, got ok=%v iss=%v", ok, iss)
	}
}

func TestBindValidatorArgsDuplicateArgument(t *testing.T) {
	params := []Parameter{{Name: "min"}}
	con := Constraint{UsesCallSyntax: true, CallArgs: []Argument{callArg("min", lit(1.0)), callArg("min", lit(2.0))}}
	_, iss, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if ok || len(iss) != 1 || iss[0].Code != CodeDuplicateArgument {
		t.Fatalf("expected DuplicateArgument, got ok=%v iss=%v", ok, iss)
	}
}

func TestBindValidatorArgsMissingRequiredArgument(t *testing.T) {
	params := []Parameter{{Name: "min"}}
	con := Constraint{UsesCallSyntax: true}
	_, iss, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if ok || len(iss) != 1 || iss[0].Code != CodeMissingArgument {
		t.Fatalf("expected MissingArgument, got ok=%v iss=%v", ok, iss)
	}
}

func TestBindValidatorArgsDefaultExpressionEvaluated(t *testing.T) {
	params := []Parameter{{Name: "min", Default: lit(2.0)}}
	con := Constraint{UsesCallSyntax: true}
	bound, _, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if !ok || bound["min"] != 2.0 {
		t.Fatalf("expected default to be evaluated, got %v", bound)
	}
}

func TestBindValidatorArgsDefaultCanReferenceEarlierBoundArg(t *testing.T) {
	params := []Parameter{
		{Name: "min", Default: lit(2.0)},
		{Name: "max", Default: &Expr{Kind: ExprPath, Path: &PathExpr{RootKind: RootVariable, RootName: "min"}}},
	}
	con := Constraint{UsesCallSyntax: true}
	bound, _, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if !ok || bound["max"] != 2.0 {
		t.Fatalf("expected max's default to resolve $min from the already-bound args, got %v", bound)
	}
}

func TestBindValidatorArgsLegacySingle(t *testing.T) {
	params := []Parameter{{Name: "n"}}
	con := Constraint{LegacyArg: &ArgShape{Single: lit(7.0)}}
	bound, _, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if !ok || bound["n"] != 7.0 {
		t.Fatalf("expected legacy single arg to bind, got %v", bound)
	}
}

func TestBindValidatorArgsLegacySingleTooManyParams(t *testing.T) {
	con := Constraint{LegacyArg: &ArgShape{Single: lit(7.0)}}
	_, iss, ok := bindValidatorArgs(nil, con, NewRootScope(nil), RootPath, map[string]int{})
	if ok || len(iss) != 1 || iss[0].Code != CodeTooManyArguments {
		t.Fatalf("expected TooManyArguments for a legacy single arg against zero params, got ok=%v iss=%v", ok, iss)
	}
}

func TestBindValidatorArgsLegacyList(t *testing.T) {
	params := []Parameter{{Name: "min"}, {Name: "max"}}
	con := Constraint{LegacyArg: &ArgShape{List: []*Expr{lit(1.0), lit(10.0)}}}
	bound, _, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if !ok || bound["min"] != 1.0 || bound["max"] != 10.0 {
		t.Fatalf("unexpected legacy-list binding: %v", bound)
	}
}

func TestBindValidatorArgsLegacyListTooMany(t *testing.T) {
	params := []Parameter{{Name: "min"}}
	con := Constraint{LegacyArg: &ArgShape{List: []*Expr{lit(1.0), lit(2.0)}}}
	_, iss, ok := bindValidatorArgs(params, con, NewRootScope(nil), RootPath, map[string]int{})
	if ok || len(iss) != 1 || iss[0].Code != CodeTooManyArguments {
		t.Fatalf("expected TooManyArguments for an over-long legacy list, got ok=%v iss=%v", ok, iss)
	}
}

// fakeRepository is a minimal hand-built Repository for unit-testing
// binder/constraint helpers that need one without pulling in the builder
// package (which itself imports this package).
type fakeRepository struct {
	types      map[string]TypeDef
	validators map[string]ValidatorDef
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{types: map[string]TypeDef{}, validators: map[string]ValidatorDef{}}
}

func (r *fakeRepository) Type(name string) (TypeDef, bool) { v, ok := r.types[name]; return v, ok }
func (r *fakeRepository) Validator(targetType, name string) (ValidatorDef, bool) {
	v, ok := r.validators[targetType+"/"+name]
	return v, ok
}
func (r *fakeRepository) TypeNames() []string {
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	return names
}

func TestCheckTypeHintUnknownHintTolerated(t *testing.T) {
	repo := newFakeRepository()
	if iss := checkTypeHint(repo, "Bogus", 5.0, Path(RootPath), map[string]int{}); iss != nil {
		t.Fatalf("expected an unknown type hint to be silently tolerated, got %v", iss)
	}
}

func TestCheckTypeHintEmptyHintTolerated(t *testing.T) {
	repo := newFakeRepository()
	if iss := checkTypeHint(repo, "", 5.0, Path(RootPath), map[string]int{}); iss != nil {
		t.Fatalf("expected an empty type hint to be a no-op, got %v", iss)
	}
}

func TestCheckTypeHintSatisfiedAndViolated(t *testing.T) {
	repo := newFakeRepository()
	repo.types["Int"] = BuiltinType{Name: "Int", Matches: func(v any) bool {
		n, ok := v.(float64)
		return ok && n == float64(int64(n))
	}}
	if iss := checkTypeHint(repo, "Int", 5.0, Path(RootPath), map[string]int{}); iss != nil {
		t.Fatalf("expected 5.0 to satisfy Int, got %v", iss)
	}
	if iss := checkTypeHint(repo, "Int", "five", Path(RootPath), map[string]int{}); len(iss) != 1 || iss[0].Code != CodeTypeMismatch {
		t.Fatalf("expected a TypeMismatch for a non-Int value, got %v", iss)
	}
}
