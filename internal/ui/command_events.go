package ui

import (
	"go.uber.org/zap"

	"github.com/gitorg-cli/gitorg/internal/execshell"
)

// ConsoleCommandEventLogger renders command lifecycle events through a zap
// logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger}
}

// ObserveCommand implements execshell.CommandEventObserver. Successful
// commands log at info, non-zero exits at warn, spawn failures at error.
func (eventLogger *ConsoleCommandEventLogger) ObserveCommand(event execshell.CommandEvent) {
	switch event.Kind {
	case execshell.CommandEventStarted:
		eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(event.Command))
	case execshell.CommandEventCompleted:
		if event.Result.ExitCode == 0 {
			eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(event.Command))
			return
		}
		eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(event.Command, event.Result))
	case execshell.CommandEventFailed:
		eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(event.Command, event.Failure))
	}
}
