// Package skema implements the core of a JSON validation engine driven by a
// user-authored schema language. Given a SchemaRepository and a decoded JSON
// value (or a raw JSON string it decodes once), Validate walks the value in
// lockstep with a type expression tree, evaluates inline constraints and
// user-defined validators, and returns a structured list of Issue values with
// machine-readable codes and categories.
//
// Parsing schema source text, building the SchemaRepository, and all CLI
// plumbing are treated as external collaborators; see package builder and
// cmd/skema for one concrete way to supply them.
package skema
