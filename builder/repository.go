// Package builder supplies one idiomatic, in-Go construction path for a
// skema.Repository, since skema treats the SchemaRepository as a ready-made
// external collaborator rather than something it parses itself.
package builder

import (
	"fmt"
	"sort"

	"github.com/reoring/skema"
)

type validatorKey struct {
	targetType string
	name       string
}

// repo is the concrete skema.Repository this package builds.
type repo struct {
	types      map[string]skema.TypeDef
	validators map[validatorKey]skema.ValidatorDef
	typeNames  []string
}

func (r *repo) Type(name string) (skema.TypeDef, bool) {
	t, ok := r.types[name]
	return t, ok
}

func (r *repo) Validator(targetType, name string) (skema.ValidatorDef, bool) {
	v, ok := r.validators[validatorKey{targetType, name}]
	return v, ok
}

func (r *repo) TypeNames() []string {
	return r.typeNames
}

// Repository accumulates type and validator definitions with a sorted-key
// Build() step, accumulating into a map and finalizing over its sorted
// keys.
type Repository struct {
	types      map[string]skema.TypeDef
	validators map[validatorKey]skema.ValidatorDef
	errs       []error
}

// NewRepository starts an empty repository builder.
func NewRepository() *Repository {
	return &Repository{
		types:      map[string]skema.TypeDef{},
		validators: map[validatorKey]skema.ValidatorDef{},
	}
}

// Type registers a type definition under name. Re-registering a name
// overwrites the previous definition.
func (b *Repository) Type(name string, def skema.TypeDef) *Repository {
	b.types[name] = def
	return b
}

// Validator registers a validator definition under (targetType, name).
func (b *Repository) Validator(targetType, name string, def skema.ValidatorDef) *Repository {
	b.validators[validatorKey{targetType, name}] = def
	return b
}

// Merge copies every type and validator from other into the receiver,
// letting callers layer a starter set (e.g. Builtins()) under their own
// definitions.
func (b *Repository) Merge(other *Repository) *Repository {
	for name, def := range other.types {
		b.types[name] = def
	}
	for key, def := range other.validators {
		b.validators[key] = def
	}
	return b
}

// Build finalizes the repository. It never fails on its own; the error
// return exists for symmetry with MustBuild and for callers that layer
// validation (e.g. LoadRepositoryYAML) on top.
func (b *Repository) Build() (skema.Repository, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("builder: %d error(s), first: %w", len(b.errs), b.errs[0])
	}
	names := make([]string, 0, len(b.types))
	for name := range b.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return &repo{types: b.types, validators: b.validators, typeNames: names}, nil
}

// MustBuild is Build but panics on error, for package-level fixtures where a
// build failure is a programmer error.
func (b *Repository) MustBuild() skema.Repository {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}
