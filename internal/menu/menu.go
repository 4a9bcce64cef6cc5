// Package menu implements the completion menu: a small selection state
// machine, key handling, and terminal-safe rendering.
package menu

import "github.com/NikitaCOEUR/promptline/internal/completion"

// Menu is Idle when it holds no completions and Active otherwise, with
// exactly one completion selected. It is not safe for concurrent use.
type Menu struct {
	completions []completion.Completion
	selected    int
}

// New creates an idle menu
func New() *Menu {
	return &Menu{}
}

// SetCompletions replaces the list and selects the first entry. An empty
// list makes the menu idle.
func (m *Menu) SetCompletions(list []completion.Completion) {
	m.completions = append([]completion.Completion(nil), list...)
	m.selected = 0
}

// Active reports whether the menu has something to show
func (m *Menu) Active() bool {
	return len(m.completions) > 0
}

// Completions returns the current list
func (m *Menu) Completions() []completion.Completion {
	return m.completions
}

// SelectedIndex returns the selected position, or -1 when idle
func (m *Menu) SelectedIndex() int {
	if !m.Active() {
		return -1
	}
	return m.selected
}

// Selected returns the selected completion
func (m *Menu) Selected() (completion.Completion, bool) {
	if !m.Active() {
		return completion.Completion{}, false
	}
	return m.completions[m.selected], true
}

// SelectNext moves the selection down, wrapping to the top
func (m *Menu) SelectNext() {
	if !m.Active() {
		return
	}
	m.selected = (m.selected + 1) % len(m.completions)
}

// SelectPrevious moves the selection up, wrapping to the bottom
func (m *Menu) SelectPrevious() {
	if !m.Active() {
		return
	}
	m.selected = (m.selected - 1 + len(m.completions)) % len(m.completions)
}

// Clear makes the menu idle
func (m *Menu) Clear() {
	m.completions = nil
	m.selected = 0
}

// Accept returns the selected completion and makes the menu idle
func (m *Menu) Accept() (completion.Completion, bool) {
	c, ok := m.Selected()
	m.Clear()
	return c, ok
}
