package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// colorEnabled reports whether styled output should be produced.
// Respects NO_COLOR and only colors real terminals.
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func render(color string, text string) string {
	if !colorEnabled() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(text)
}

// ColorBranchName colors a branch name
func ColorBranchName(branchName string) string {
	return render("12", branchName)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return render("8", text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return render("3", text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	return render("1", text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return render("6", text)
}
