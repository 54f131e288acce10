package ui

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

const (
	affirmativeShortResponseConstant = "y"
	affirmativeLongResponseConstant  = "yes"
)

// PromptUIConfirmationPrompter collects confirmations through an interactive terminal prompt.
type PromptUIConfirmationPrompter struct{}

// NewPromptUIConfirmationPrompter constructs a terminal-backed prompter.
func NewPromptUIConfirmationPrompter() *PromptUIConfirmationPrompter {
	return &PromptUIConfirmationPrompter{}
}

// Confirm displays the prompt and interprets the response. Aborting the
// prompt counts as a decline, not an error.
func (prompter *PromptUIConfirmationPrompter) Confirm(prompt string) (bool, error) {
	confirmationPrompt := promptui.Prompt{
		Label:     strings.TrimSpace(prompt),
		IsConfirm: true,
	}

	_, promptError := confirmationPrompt.Run()
	if promptError != nil {
		if errors.Is(promptError, promptui.ErrAbort) {
			return false, nil
		}
		return false, promptError
	}

	return true, nil
}

// IOConfirmationPrompter reads confirmation responses from an io.Reader,
// used when standard input is not a terminal and in tests.
type IOConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets affirmative responses (y/yes).
func (prompter *IOConfirmationPrompter) Confirm(prompt string) (bool, error) {
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return false, writeError
		}
	}

	response, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return false, readError
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case affirmativeShortResponseConstant, affirmativeLongResponseConstant:
		return true, nil
	default:
		return false, nil
	}
}
