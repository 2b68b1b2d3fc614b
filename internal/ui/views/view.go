package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"omnisearch/internal/domain"
	"omnisearch/internal/selection"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Input       string // rendered query input
	Header      string
	BeforeList  string
	AfterList   string
	Suggestions []string

	Results     []domain.ScoredResult
	ActiveIndex int
	Offset      int
	MaxVisible  int

	RegexMode   bool
	Loading     bool
	FilterLabel string
	Pending     *selection.Pending
	Notice      string

	ShowDescriptions bool
	ShowShortcuts    bool
	HelpLine         string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	if state.Header != "" {
		content.WriteString(r.styles.Dim.Render(state.Header))
		content.WriteString("\n")
	}

	content.WriteString(state.Input)
	content.WriteString("\n")

	if len(state.Suggestions) > 0 {
		content.WriteString(r.styles.Suggestion.Render("Previously: " + strings.Join(state.Suggestions, " · ")))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	if state.BeforeList != "" {
		content.WriteString(state.BeforeList)
		content.WriteString("\n")
	}

	if len(state.Results) == 0 {
		content.WriteString(r.styles.Dim.Render("No results"))
	} else {
		content.WriteString(r.RenderResults(state))
	}

	if state.AfterList != "" {
		content.WriteString("\n")
		content.WriteString(state.AfterList)
	}

	if state.Notice != "" {
		content.WriteString("\n\n")
		content.WriteString(r.styles.StatusError.Render(state.Notice))
	}

	if state.HelpLine != "" && state.Pending == nil {
		current := strings.Count(content.String(), "\n") + 1
		available := state.Height - 2 // Main padding
		if pad := available - current - 1; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpLine))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.Pending != nil {
		item := state.Pending.Result.Item
		dialog := domain.ConfirmSpec{}
		if item.Confirm != nil {
			dialog = *item.Confirm
		}
		popup := r.popupRender.RenderConfirm(dialog, item.Label)
		style := r.styles.ConfirmBox.BorderForeground(lipgloss.Color(SeverityColor(dialog.Severity)))
		return r.popupRender.RenderPopupOverlay(finalContent, popup, state.Height, state.Width, style)
	}

	return finalContent
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("omnisearch")

	var indicators []string
	if state.Loading {
		indicators = append(indicators, r.styles.StatusLoading.Render("⠋ Searching"))
	}
	if state.RegexMode {
		indicators = append(indicators, r.styles.Regex.Render("[regex]"))
	}
	if state.FilterLabel != "" {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterLabel)))
	}
	if len(indicators) == 0 {
		return logo
	}

	right := strings.Join(indicators, "  ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// RenderResults renders the visible window of results with group headers
func (r *Renderer) RenderResults(state ViewState) string {
	start, end := VisibleRange(len(state.Results), state.Offset, state.MaxVisible)

	var lines []string
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", start)))
	}

	prevGroup := ""
	for i := start; i < end; i++ {
		res := state.Results[i]
		group := domain.GroupOf(res.Item)
		if i == start || group != prevGroup {
			lines = append(lines, r.styles.Group.Render(group))
			prevGroup = group
		}
		lines = append(lines, r.RenderResult(res, i == state.ActiveIndex, state))
	}

	if end < len(state.Results) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(state.Results)-end)))
	}
	return strings.Join(lines, "\n")
}

// RenderResult renders a single result row
func (r *Renderer) RenderResult(res domain.ScoredResult, active bool, state ViewState) string {
	item := res.Item

	labelStyle := r.styles.Label
	if item.Disabled {
		labelStyle = r.styles.Disabled
	}

	var label string
	if res.MatchedField == domain.FieldLabel && !item.Disabled {
		label = Highlight(item.Label, res.MatchedPositions, labelStyle, r.styles.Highlight)
	} else {
		label = labelStyle.Render(item.Label)
	}

	cursor := "  "
	if active {
		cursor = "› "
	}
	line := cursor + label

	switch res.MatchedField {
	case domain.FieldKeyword, domain.FieldAlias:
		line += " " + r.styles.Dim.Render("("+Highlight(res.MatchedText, res.MatchedPositions, r.styles.Dim, r.styles.Highlight)+")")
	}

	if state.ShowDescriptions && item.Description != "" {
		desc := r.styles.Description.Render(item.Description)
		if res.MatchedField == domain.FieldDescription {
			desc = Highlight(item.Description, res.MatchedPositions, r.styles.Description, r.styles.Highlight)
		}
		line += "  " + desc
	}

	if state.ShowShortcuts && item.Shortcut != "" {
		hint := r.styles.Shortcut.Render(item.Shortcut)
		if state.Width > 0 {
			pad := state.Width - 4 - lipgloss.Width(line) - lipgloss.Width(hint)
			if pad > 1 {
				line += strings.Repeat(" ", pad)
			} else {
				line += "  "
			}
		} else {
			line += "  "
		}
		line += hint
	}

	if active {
		if state.Width > 4 {
			if w := lipgloss.Width(line); w < state.Width-4 {
				line += strings.Repeat(" ", state.Width-4-w)
			}
		}
		line = r.styles.SelectionBg.Render(line)
	}
	return line
}

// Highlight renders text with the runes at positions styled as matches
func Highlight(text string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}

	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}

	var b strings.Builder
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runMatched {
			b.WriteString(match.Render(string(run)))
		} else {
			b.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}

	for i, ch := range []rune(text) {
		if marked[i] != runMatched {
			flush()
			runMatched = marked[i]
		}
		run = append(run, ch)
	}
	flush()
	return b.String()
}

// VisibleRange returns the half-open window of result indices to draw
func VisibleRange(total, offset, maxVisible int) (int, int) {
	if maxVisible <= 0 || maxVisible > total {
		maxVisible = total
	}
	if offset > total-maxVisible {
		offset = total - maxVisible
	}
	if offset < 0 {
		offset = 0
	}
	return offset, offset + maxVisible
}

// ScrollOffset returns the window offset that keeps active visible
func ScrollOffset(active, offset, maxVisible int) int {
	if maxVisible <= 0 || active < 0 {
		return 0
	}
	if active < offset {
		return active
	}
	if active >= offset+maxVisible {
		return active - maxVisible + 1
	}
	return offset
}
