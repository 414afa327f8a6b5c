// ABOUTME: Fixes the lipgloss background to dark before bubbletea initializes
// ABOUTME: Blank-import from main ahead of any package that pulls in bubbletea

package termfix

import "github.com/charmbracelet/lipgloss"

// An explicit background stops bubbletea's init from querying the terminal
// with OSC 10/11; replies to that query arrive late and land in the repl
// prompt. This package must not import bubbletea so its init runs first.
func init() {
	lipgloss.SetHasDarkBackground(true)
}
