package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

// resolvePrompt returns the prompt text. Priority:
// 1. Command-line arguments, joined with spaces
// 2. Piped stdin
// 3. An interactive form when stdin is a terminal
// Empty prompts are not rejected here; Request.Validate classifies them
// before any network call.
func resolvePrompt(args []string, stdin *os.File) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if !isTerminal(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(data), nil
	}

	return askPrompt()
}

// askPrompt collects a prompt through an interactive form.
func askPrompt() (string, error) {
	var prompt string

	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Prompt").
			Placeholder("Ask Gemini anything...").
			Value(&prompt),
	))

	if err := form.Run(); err != nil {
		return "", err
	}

	return prompt, nil
}
