package color

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Color colorizes status output and can be switched off as a whole
type Color struct {
	enabled bool
	success *color.Color
	failure *color.Color
	warning *color.Color
	bold    *color.Color
}

// New creates a new Color instance. Color stays off when the caller disables
// it, when NO_COLOR is set, or when stdout is not a terminal.
func New(enabled bool) *Color {
	return newColor(enabled && !color.NoColor)
}

func newColor(enabled bool) *Color {
	c := &Color{
		enabled: enabled,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		warning: color.New(color.FgYellow),
		bold:    color.New(color.Bold),
	}
	for _, fc := range []*color.Color{c.success, c.failure, c.warning, c.bold} {
		if enabled {
			fc.EnableColor()
		} else {
			fc.DisableColor()
		}
	}
	return c
}

// Enabled reports whether escape codes are emitted
func (c *Color) Enabled() bool {
	return c.enabled
}

// Success colors text green
func (c *Color) Success(text string) string {
	return c.success.Sprint(text)
}

// Failure colors text red
func (c *Color) Failure(text string) string {
	return c.failure.Sprint(text)
}

// Warning colors text yellow (for diagnostics and skipped items)
func (c *Color) Warning(text string) string {
	return c.warning.Sprint(text)
}

// Bold makes text bold
func (c *Color) Bold(text string) string {
	return c.bold.Sprint(text)
}

// StatusSymbol returns the marker printed in front of a routine name
func (c *Color) StatusSymbol(status string) string {
	switch status {
	case "ok", "executed", "generated":
		return c.Success("✓")
	case "failed", "error":
		return c.Failure("✗")
	case "skipped", "diagnostic":
		return c.Warning("!")
	default:
		return " "
	}
}

// FormatStatusLine formats one routine line of an execution report
func (c *Color) FormatStatusLine(status, name, detail string) string {
	if detail == "" {
		return fmt.Sprintf("  %s %s", c.StatusSymbol(status), name)
	}
	return fmt.Sprintf("  %s %s: %s", c.StatusSymbol(status), name, detail)
}

// FormatSummaryLine formats the execution totals
func (c *Color) FormatSummaryLine(executed, failed, skipped int) string {
	// Always show all three categories, even if zero
	parts := []string{
		c.Success(fmt.Sprintf("%d executed", executed)),
		c.Failure(fmt.Sprintf("%d failed", failed)),
		c.Warning(fmt.Sprintf("%d skipped", skipped)),
	}
	return fmt.Sprintf("%s %s.", c.Bold("Summary:"), strings.Join(parts, ", "))
}
