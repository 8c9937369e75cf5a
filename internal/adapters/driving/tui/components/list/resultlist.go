// Package list provides the result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// linesPerResult is the rendered height of one entry: title and snippet.
const linesPerResult = 2

// ResultList displays search results in backend order with a movable
// selection.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	stale    bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles arrow-key navigation. Letter keys belong to the input.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return ""
	}

	visible := max((r.height-1)/linesPerResult, 1)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.results))

	lines := make([]string, 0, (end-start)*linesPerResult+1)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, r.results[i]))
	}
	if hidden := len(r.results) - end; hidden > 0 {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("  … %d more", hidden)))
	}

	return strings.Join(lines, "\n")
}

func (r *ResultList) renderResult(index int, result domain.SearchResult) string {
	title := truncate(result.Title, max(r.width-4, 10))
	snippet := truncate(result.Snippet, max(r.width-6, 20))

	var titleLine string
	switch {
	case r.stale:
		titleLine = r.styles.Muted.Render("  " + title)
	case index == r.selected:
		titleLine = r.styles.Selected.Render("> " + title)
	default:
		titleLine = r.styles.Normal.Render("  " + title)
	}

	return titleLine + "\n" + r.styles.Snippet.Render("    "+snippet)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// SetResults replaces the results. The selection follows the previously
// selected result when it is still present.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	var selectedID string
	if cur := r.SelectedResult(); cur != nil {
		selectedID = cur.ID
	}

	r.results = results
	r.selected = 0
	for i := range results {
		if selectedID != "" && results[i].ID == selectedID {
			r.selected = i
			break
		}
	}
}

// SetStale marks the results as belonging to a superseded query.
func (r *ResultList) SetStale(stale bool) {
	r.stale = stale
}

// Stale reports whether the results are marked stale.
func (r *ResultList) Stale() bool {
	return r.stale
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index. Out-of-range values are ignored.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
