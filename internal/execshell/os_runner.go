package execshell

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command using os/exec. A non-zero exit code is
// reported through the result, not as an error; the error return is reserved
// for commands that could not run at all.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory

	var standardOutputBuilder strings.Builder
	var standardErrorBuilder strings.Builder
	executable.Stdout = &standardOutputBuilder
	executable.Stderr = &standardErrorBuilder

	runError := executable.Run()
	exitError := &exec.ExitError{}
	switch {
	case runError == nil:
		return ExecutionResult{
			StandardOutput: standardOutputBuilder.String(),
			StandardError:  standardErrorBuilder.String(),
			ExitCode:       0,
		}, nil
	case errors.As(runError, &exitError):
		return ExecutionResult{
			StandardOutput: standardOutputBuilder.String(),
			StandardError:  standardErrorBuilder.String(),
			ExitCode:       exitError.ExitCode(),
		}, nil
	default:
		return ExecutionResult{}, runError
	}
}
