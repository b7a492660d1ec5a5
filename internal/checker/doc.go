// Package checker orchestrates the full hygiene run: git repository
// discovery and scanning, the home directory allow-list audit, report
// assembly, optional email delivery, and the bit-field status code the
// process exits with.
package checker
