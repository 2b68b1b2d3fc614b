package views

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"omnisearch/internal/domain"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderConfirm renders the body of a confirmation dialog
func (pr *PopupRenderer) RenderConfirm(dialog domain.ConfirmSpec, label string) string {
	accent := lipgloss.Color(SeverityColor(dialog.Severity))

	title := dialog.Title
	if title == "" {
		title = fmt.Sprintf("Run %q?", label)
	}
	confirmLabel := dialog.ConfirmLabel
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	cancelLabel := dialog.CancelLabel
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accent).Render(title))
	b.WriteString("\n")
	if dialog.Message != "" {
		b.WriteString("\n")
		b.WriteString(dialog.Message)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	confirm := pr.styles.Button.Background(accent).Render(confirmLabel + " (enter)")
	cancel := pr.styles.Button.Render(cancelLabel + " (esc)")
	b.WriteString(confirm + "  " + cancel)
	return b.String()
}

// RenderPopupOverlay renders a popup centered on top of main content.
// The main content is greyed out; rows covered by the popup are replaced.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)

	base := strings.Split(desaturateANSI(mainContent), "\n")
	if height < len(base) {
		height = len(base)
	}
	for len(base) < height {
		base = append(base, "")
	}

	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - modalH) / 2
	if y < 0 {
		y = 0
	}

	popupLines := strings.Split(styledPopup, "\n")
	for i, line := range popupLines {
		row := y + i
		if row >= len(base) {
			base = append(base, "")
		}
		base[row] = strings.Repeat(" ", x) + line
	}
	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color and style codes
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(StripANSI(s), "\n")
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = gray.Render(line)
	}
	return strings.Join(lines, "\n")
}
