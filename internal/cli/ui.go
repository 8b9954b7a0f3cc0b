package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pipecanvas/pkg/bridge"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleMessageType = lipgloss.NewStyle().Foreground(colorBlue).Width(24)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints diagram statistics on a single line.
func printStats(nodes, edges int, mode string) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodes),
		fmt.Sprintf("%d edges", edges),
		mode,
	}
	fmt.Println("  " + StyleDim.Render(strings.Join(parts, " · ")))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Notifications
// =============================================================================

// printNotification prints one outbound message as "type  payload".
func printNotification(msg bridge.Outbound) {
	fmt.Println("  " + styleMessageType.Render(msg.Type()) + " " + StyleValue.Render(describe(msg)))
}

// describe renders the payload of a notification in a compact form.
func describe(msg bridge.Outbound) string {
	switch m := msg.(type) {
	case bridge.NodeMoved:
		s := fmt.Sprintf("node %d to (%d, %d)", m.ID, m.X, m.Y)
		if m.Batch {
			s += " batch"
		}
		return s
	case bridge.NodeRemoved:
		return fmt.Sprintf("node %d", m.ID)
	case bridge.EdgeAdded:
		return fmt.Sprintf("%d %s %d", m.SourceID, iconArrow, m.TargetID)
	case bridge.EdgeRemoved:
		return fmt.Sprintf("edge %d", m.ID)
	case bridge.NodeDetailRequested:
		return fmt.Sprintf("node %d", m.ID)
	case bridge.NodeDebugRequested:
		return fmt.Sprintf("node %d", m.ID)
	case bridge.NodeCopyRequested:
		return fmt.Sprintf("node %d at (%d, %d)", m.ID, m.X, m.Y)
	case bridge.EdgeLabelEditRequested:
		return fmt.Sprintf("edge %d", m.ID)
	case bridge.MultiselectActive:
		return fmt.Sprintf("%t", m.Active)
	default:
		return ""
	}
}
