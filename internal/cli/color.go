package cli

import (
	"github.com/fatih/color"

	"github.com/tiwariParth/tasklist/internal/models"
)

var (
	Bold   = color.New(color.Bold).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
)

// DisableColor turns off ANSI escapes for all output.
func DisableColor() {
	color.NoColor = true
}

// priorityLabel colors a priority by severity.
func priorityLabel(p models.Priority) string {
	switch p {
	case models.High:
		return Red(p.String())
	case models.Medium:
		return Yellow(p.String())
	default:
		return Green(p.String())
	}
}
