package writer

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Confirmer answers overwrite questions for the prompt policy.
type Confirmer interface {
	Confirm(path string) (bool, error)
}

// TerminalConfirmer asks interactively.
type TerminalConfirmer struct{}

func (TerminalConfirmer) Confirm(path string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(fmt.Sprintf("Overwrite %s?", path))
}

// Decline answers no to everything.
type Decline struct{}

func (Decline) Confirm(string) (bool, error) {
	return false, nil
}

// NewConfirmer prompts when in is a terminal and declines otherwise.
func NewConfirmer(in *os.File) Confirmer {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return TerminalConfirmer{}
	}
	return Decline{}
}
