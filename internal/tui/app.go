package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive wake TUI. Passcode and delay seed the
// form; both can be changed before starting the sequence.
func Run(passcode string, delay time.Duration) error {
	m := NewModel(passcode, delay)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}

	return nil
}
