// Package canon produces canonical JSON and content-addressed identifiers.
//
// Scenario fingerprints are stable across runs and across machines: object keys
// are sorted, strings are NFC normalized, HTML characters are not escaped and
// floats are rejected. The journal keys checks by these fingerprints so two runs
// of the same catalog can be compared check by check.
package canon
