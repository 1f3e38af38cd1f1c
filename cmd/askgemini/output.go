package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rafael-ulguim1/askgemini/pkg/credential"
	"github.com/rafael-ulguim1/askgemini/pkg/generation"
)

var (
	errorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")) // red
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))            // gray

	errorBlockStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("1"))
)

// renderMarkdown converts markdown text to terminal-formatted output.
// The raw text is returned unchanged when rendering fails.
func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text
	}

	out, err := r.Render(text)
	if err != nil {
		return text
	}

	return strings.TrimRight(out, "\n")
}

// printError writes a styled error message with a remedy hint where one
// applies.
func printError(w io.Writer, err error) {
	msg := errorTitleStyle.Render("error:") + " " + err.Error()
	if hint := errorHint(err); hint != "" {
		msg += "\n" + hintStyle.Render(hint)
	}

	fmt.Fprintln(w, errorBlockStyle.Render(msg))
}

// errorHint returns a suggested remedy for the classified error kinds.
func errorHint(err error) string {
	var (
		missing   *credential.MissingError
		transient *generation.TransientError
		rejection *generation.RejectionError
		response  *generation.ResponseError
	)

	switch {
	case errors.As(err, &missing):
		return "Set " + credential.EnvKey + " in your environment or .env file."
	case errors.Is(err, generation.ErrEmptyPrompt):
		return "Pass a prompt as an argument, pipe it on stdin, or run interactively."
	case errors.As(err, &transient):
		return "The service is busy or unreachable; try again in a moment."
	case errors.As(err, &rejection):
		if rejection.StatusCode == http.StatusUnauthorized || rejection.StatusCode == http.StatusForbidden {
			return "Check that your API key is valid and has access to the model."
		}

		return "The request was rejected; adjust the prompt or parameters."
	case errors.As(err, &response):
		return "The response did not match the expected API shape; the API contract may have changed."
	}

	return ""
}
