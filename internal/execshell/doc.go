// Package execshell provides structured helpers for invoking the git client.
//
// It wraps os/exec with lifecycle logging via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines the abstractions
// gitorg uses to run git in a testable manner.
package execshell
