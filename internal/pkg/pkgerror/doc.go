// Package pkgerror defines the structured error type returned by use cases
// and mapped to HTTP responses at the edge.
//
// An Error carries a user-facing message, a Type, a Code that maps to a
// status code, and optional per-field details for validation failures.
package pkgerror
