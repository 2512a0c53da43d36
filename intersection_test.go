package skema_test

import (
	"testing"

	skema "github.com/reoring/skema"
	"github.com/reoring/skema/builder"
)

func intersectionRepo() skema.Repository {
	b := builder.NewRepository().Merge(builder.Builtins())
	b.Type("Root", skema.UserType{Name: "Root", Expr: builder.Intersection(
		builder.Named("String", builder.Con("pattern", builder.Lit("^[0-9]+$"))),
		builder.Named("String", builder.Con("minLength", builder.Lit(5.0))),
	)})
	return b.MustBuild()
}

func TestIntersectionAllBranchesPass(t *testing.T) {
	issues := skema.Validate(`"12345"`, intersectionRepo(), "Root")
	if len(issues) != 0 {
		t.Fatalf("expected no issues when every branch is satisfied, got %v", issues)
	}
}

func TestIntersectionOneBranchFails(t *testing.T) {
	issues := skema.Validate(`"1234"`, intersectionRepo(), "Root")
	if len(issues) != 1 {
		t.Fatalf("expected exactly one issue from the failing minLength branch, got %v", issues)
	}
	if issues[0].Code != skema.CodeConstraintViolation {
		t.Fatalf("expected a ConstraintViolation, got %v", issues[0])
	}
}

func TestIntersectionBothBranchesFail(t *testing.T) {
	issues := skema.Validate(`"ab"`, intersectionRepo(), "Root")
	if len(issues) != 2 {
		t.Fatalf("expected one issue from each failing branch (not digits, too short), got %v", issues)
	}
}
