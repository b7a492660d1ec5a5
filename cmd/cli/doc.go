// Package cli constructs the checkup command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the check command.
package cli
