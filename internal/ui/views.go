// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const boxWidth = 60

var (
	accentColor  = lipgloss.Color("#4A90D9")
	mutedColor   = lipgloss.Color("#888888")
	successColor = lipgloss.Color("#00AA00")
	activeColor  = lipgloss.Color("#FFA500")
	errorColor   = lipgloss.Color("#A40000")
)

func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderFileQueue(m))
	b.WriteString("\n")
	b.WriteString(renderOverallProgress(m))

	return b.String()
}

func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Render("Audio Enhancer Pro")

	sub := fmt.Sprintf("Processing %d file(s)", m.TotalFiles)
	if m.Settings != "" {
		sub += " | " + m.Settings
	}
	subtitle := lipgloss.NewStyle().
		Foreground(mutedColor).
		Italic(true).
		Render(sub)

	return title + "\n" + subtitle
}

func renderFileQueue(m Model) string {
	var b strings.Builder

	for _, file := range m.Files {
		b.WriteString(renderFileEntry(file, m.Width))
		b.WriteString("\n")
	}

	return b.String()
}

func renderFileEntry(file FileProgress, width int) string {
	switch file.Status {
	case StatusComplete:
		icon := lipgloss.NewStyle().Foreground(successColor).Render("✓")
		return fmt.Sprintf(" %s %s → %s", icon, file.Name, file.OutputPath)

	case StatusProcessing:
		icon := lipgloss.NewStyle().Foreground(activeColor).Render("⚙")
		return fmt.Sprintf(" %s %s\n%s", icon, file.Name, renderFileDetails(file, width))

	case StatusError:
		icon := lipgloss.NewStyle().Foreground(errorColor).Render("✗")
		return fmt.Sprintf(" %s %s\n   Error: %v", icon, file.Name, file.Error)

	default:
		icon := lipgloss.NewStyle().Foreground(mutedColor).Render("○")
		return fmt.Sprintf(" %s %s\n   Queued...", icon, file.Name)
	}
}

// renderFileDetails renders chunk progress for the active file
func renderFileDetails(file FileProgress, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1).
		Width(fitWidth(width))

	var content strings.Builder

	if file.Chunks == 0 {
		content.WriteString("Decoding...\n")
	} else {
		fmt.Fprintf(&content, "Chunk %d/%d\n", file.ChunksDone, file.Chunks)
	}
	content.WriteString(renderProgressBar(file.Progress, 40))
	content.WriteString("\n")

	elapsed := file.ElapsedTime.Seconds()
	var remaining float64
	if file.Progress > 0 {
		remaining = (elapsed / file.Progress) - elapsed
	}
	fmt.Fprintf(&content, "Elapsed: %.1fs | Remaining: ~%.1fs", elapsed, remaining)

	return box.Render(content.String())
}

func renderProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)

	return fmt.Sprintf("%s %d%%", bar, int(progress*100))
}

func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor).
		Padding(0, 1).
		Width(fitWidth(m.Width))

	var content string
	if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Files) {
		content = fmt.Sprintf("Processing file %d of %d (%d complete, %d failed)",
			m.CurrentIndex+1, m.TotalFiles, m.CompletedFiles, m.FailedFiles)
	} else {
		content = fmt.Sprintf("Overall Progress: %d/%d complete", m.CompletedFiles, m.TotalFiles)
	}

	return box.Render(content)
}

func renderCompletionSummary(m Model) string {
	var b strings.Builder

	if m.Err != nil {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(errorColor).Render("Batch failed"))
		fmt.Fprintf(&b, "\n\n%v\n", m.Err)
		return b.String()
	}

	color, text := successColor, "Processing complete!"
	if m.FailedFiles > 0 {
		color, text = activeColor, "Processing finished with errors"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(text))
	b.WriteString("\n\n")

	for _, file := range m.Files {
		switch file.Status {
		case StatusComplete:
			b.WriteString(renderCompletedFile(file))
		case StatusError:
			b.WriteString(renderFileEntry(file, m.Width))
		default:
			continue
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", boxWidth))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d enhanced, %d failed in %s\n",
		m.CompletedFiles, m.FailedFiles, time.Since(m.StartTime).Round(100*time.Millisecond))

	return b.String()
}

func renderCompletedFile(file FileProgress) string {
	icon := lipgloss.NewStyle().Foreground(successColor).Render("✓")

	return fmt.Sprintf(" %s %s → %s\n   Length: %s | Chunks: %d | Took: %.1fs",
		icon, file.Name, file.OutputPath,
		file.Duration.Round(100*time.Millisecond), file.Chunks, file.ElapsedTime.Seconds())
}

func fitWidth(width int) int {
	if width > 4 && width-4 < boxWidth {
		return width - 4
	}

	return boxWidth
}
