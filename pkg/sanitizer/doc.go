// Package sanitizer normalizes free-text input before validation and storage.
//
// All functions are idempotent: applying them more than once gives the same
// result. Invalid input never produces an error, it normalizes to the empty
// string instead.
//
// Normalization includes:
//   - Strings: strip control characters, collapse whitespace, trim
//   - Visitor names: string normalization with a default for blank names
//   - E-mail addresses: trim and lowercase, no format checks
//   - Identifiers: trim only, case is preserved
package sanitizer
