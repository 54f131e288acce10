// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// DryRunFlagName names the flag that plans mutations without applying them.
	DryRunFlagName = "dry-run"
	// AssumeYesFlagName names the flag that suppresses confirmation prompts.
	AssumeYesFlagName = "yes"

	dryRunFlagUsageConstant    = "Report planned operations without touching any repository."
	assumeYesFlagUsageConstant = "Apply changes without asking for confirmation."
	assumeYesFlagShorthand     = "y"
)

// ExecutionFlags carries resolved execution flag values for a command invocation.
type ExecutionFlags struct {
	DryRun       bool
	DryRunSet    bool
	AssumeYes    bool
	AssumeYesSet bool
}

// BindExecutionFlags attaches the dry-run and assume-yes flags to the provided command.
func BindExecutionFlags(command *cobra.Command) {
	if command == nil {
		return
	}

	flagSet := command.Flags()
	flagSet.Bool(DryRunFlagName, false, dryRunFlagUsageConstant)
	flagSet.BoolP(AssumeYesFlagName, assumeYesFlagShorthand, false, assumeYesFlagUsageConstant)
}

// ResolveExecutionFlags reads execution flag values from the command, reporting which were set explicitly.
func ResolveExecutionFlags(command *cobra.Command) ExecutionFlags {
	if command == nil {
		return ExecutionFlags{}
	}

	resolved := ExecutionFlags{}
	resolved.DryRun, resolved.DryRunSet = resolveBoolFlag(command.Flags(), DryRunFlagName)
	resolved.AssumeYes, resolved.AssumeYesSet = resolveBoolFlag(command.Flags(), AssumeYesFlagName)
	return resolved
}

func resolveBoolFlag(flagSet *pflag.FlagSet, flagName string) (bool, bool) {
	if flagSet == nil {
		return false, false
	}

	flagValue, lookupError := flagSet.GetBool(flagName)
	if lookupError != nil {
		return false, false
	}

	return flagValue, flagSet.Changed(flagName)
}
