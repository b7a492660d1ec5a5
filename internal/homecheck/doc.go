// Package homecheck audits the user's home directory against an allow-list
// policy. Top-level entries must be named by the policy, and inspected
// subdirectories must contain only their allowed entries. The checker only
// reports violations; disposing of offending files is left to an optional
// caller-supplied strategy.
package homecheck
