// Package ui translates shell command lifecycle events into human-readable
// messages for console-format logging.
package ui
