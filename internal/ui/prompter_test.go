package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitorg-cli/gitorg/internal/ui"
)

const testPromptTextConstant = "Reconcile remotes in 'proj1' (2 change(s))? [y/N] "

func TestIOConfirmationPrompterInterpretsResponses(testInstance *testing.T) {
	testCases := []struct {
		name             string
		response         string
		expectedDecision bool
	}{
		{name: "short_affirmative", response: "y\n", expectedDecision: true},
		{name: "long_affirmative", response: "yes\n", expectedDecision: true},
		{name: "uppercase_affirmative", response: "YES\n", expectedDecision: true},
		{name: "padded_affirmative", response: "  y  \n", expectedDecision: true},
		{name: "explicit_decline", response: "n\n", expectedDecision: false},
		{name: "empty_response", response: "\n", expectedDecision: false},
		{name: "unrelated_response", response: "maybe later\n", expectedDecision: false},
		{name: "end_of_input", response: "", expectedDecision: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			prompter := ui.NewIOConfirmationPrompter(strings.NewReader(testCase.response), outputBuffer)

			decision, promptError := prompter.Confirm(testPromptTextConstant)
			require.NoError(testInstance, promptError)
			require.Equal(testInstance, testCase.expectedDecision, decision)
			require.Equal(testInstance, testPromptTextConstant, outputBuffer.String())
		})
	}
}

func TestIOConfirmationPrompterToleratesNilWriter(testInstance *testing.T) {
	prompter := ui.NewIOConfirmationPrompter(strings.NewReader("y\n"), nil)

	decision, promptError := prompter.Confirm(testPromptTextConstant)
	require.NoError(testInstance, promptError)
	require.True(testInstance, decision)
}
