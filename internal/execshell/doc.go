// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner
// for default process execution, and defines the abstractions checkup uses
// to run git in a testable manner. Every invocation carries an explicit
// working directory so concurrent workers never contend over process state.
package execshell
