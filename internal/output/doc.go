// Package output provides deterministic JSON encoding for report artifacts.
//
// Coverage reports are diffed and committed, so repeated runs over identical
// inputs must produce byte-identical bytes: keys sorted, floats rounded, and
// non-finite numbers coerced to 0 (a percentage field is never NaN).
package output
