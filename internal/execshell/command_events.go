package execshell

// CommandEventKind classifies a command lifecycle notification.
type CommandEventKind int

const (
	// CommandEventStarted fires immediately before the process is spawned.
	CommandEventStarted CommandEventKind = iota
	// CommandEventCompleted fires when the process ran to completion,
	// regardless of exit code; Result carries the outcome.
	CommandEventCompleted
	// CommandEventFailed fires when the process could not be executed at
	// all; Failure carries the spawn error.
	CommandEventFailed
)

// CommandEvent is one lifecycle notification for an executed git command.
// Result is populated for completed events, Failure for failed ones.
type CommandEvent struct {
	Kind    CommandEventKind
	Command ShellCommand
	Result  ExecutionResult
	Failure error
}

// CommandEventObserver receives lifecycle notifications for git invocations,
// letting callers mirror command activity to a user-facing channel.
type CommandEventObserver interface {
	ObserveCommand(event CommandEvent)
}
