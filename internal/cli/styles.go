// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/audenhance"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#4A90D9")
	errorColor   = lipgloss.Color("#A40000")
	successColor = lipgloss.Color("#00AA00")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("Audio Enhancer Pro"))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Fprintln(w)
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintResult prints the one-line outcome of a processed file.
func PrintResult(w io.Writer, res audenhance.Result) {
	if res.Err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", ErrorStyle.Render("FAIL"), res.Name, res.Err)
		return
	}

	fmt.Fprintf(w, "%s %s → %s %s\n",
		SuccessStyle.Render("OK"), res.Name, res.OutputPath,
		KeyStyle.Render(fmt.Sprintf("(%d chunks, %s)", res.Chunks, res.Duration)))
}
