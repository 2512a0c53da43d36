package skema

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Validate normalizes input, resolves the root type, seeds the root scope,
// and returns the collected Issues. An empty result means the value
// validated successfully.
func Validate(jsonInput any, repo Repository, requestedRootType string) Issues {
	value, decodeErr := normalizeInput(jsonInput)
	if decodeErr != nil {
		return AppendIssue(nil, RootPath.String(), "Invalid JSON: "+decodeErr.Error(), CodeInvalidExpression, CategoryParseError)
	}

	rootExpr, rootIss := resolveRootType(repo, requestedRootType)
	if rootIss != nil {
		return rootIss
	}

	scope := NewRootScope(value)
	typeStack := map[string]int{}
	return matchType(repo, rootExpr, value, scope, RootPath, typeStack)
}

// Is is a convenience wrapper reporting whether value validates cleanly.
func Is(jsonInput any, repo Repository, requestedRootType string) bool {
	return len(Validate(jsonInput, repo, requestedRootType)) == 0
}

func normalizeInput(jsonInput any) (any, error) {
	s, isString := jsonInput.(string)
	if !isString {
		return jsonInput, nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func resolveRootType(repo Repository, requestedRootType string) (*TypeExpr, Issues) {
	if requestedRootType != "" {
		if _, found := repo.Type(requestedRootType); !found {
			return nil, AppendIssue(nil, RootPath.String(),
				fmt.Sprintf("Requested root type %q is not defined.", requestedRootType),
				CodeUnknownType, CategoryTypeError)
		}
		return namedExprFor(requestedRootType), nil
	}

	if _, found := repo.Type("Root"); found {
		return namedExprFor("Root"), nil
	}

	names := repo.TypeNames()
	var userTypeNames []string
	for _, name := range names {
		if def, found := repo.Type(name); found {
			if _, isUser := def.(UserType); isUser {
				userTypeNames = append(userTypeNames, name)
			}
		}
	}
	if len(userTypeNames) == 1 {
		return namedExprFor(userTypeNames[0]), nil
	}

	return nil, AppendIssue(nil, RootPath.String(),
		fmt.Sprintf("Unable to infer root type. Available types: %s", strings.Join(names, ", ")),
		CodeUnknownType, CategoryTypeError)
}

// namedExprFor builds a throwaway Named type expression referencing the
// resolved root type, so the orchestrator can reuse matchType's Named
// dispatch without a distinct "root" code path.
func namedExprFor(name string) *TypeExpr {
	return &TypeExpr{Kind: KindNamed, Name: name}
}
