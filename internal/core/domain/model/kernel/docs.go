// Package kernel contains shared value objects used across the kitchen domain:
// validated UUID identifiers and preparation Station codes. All types are
// immutable, constructor-guarded, and safe for concurrent use.
package kernel
