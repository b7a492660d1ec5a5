// Package repostatus implements the concurrent repository-status engine: it
// classifies captured git output, probes individual working directories for
// dirty trees and unpushed branches, fans probes out across a bounded worker
// pool, and reduces the collected statuses into a deterministic text report.
package repostatus
