// Package tui renders the live build as a terminal rule list fed by the
// progress vertex stream.
package tui

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
)

// TapeSource yields successive progress updates. *progrock.Tape has no read
// side, so callers hand the model a readable wrapper around the recorder's
// writer.
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

// WaitForTape returns a Bubble Tea command that reads the next update from
// the source. Any read error ends the stream.
func WaitForTape(tape TapeSource) tea.Cmd {
	return func() tea.Msg {
		update, err := tape.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return MsgTapeEnded{Err: err}
			}
			return MsgTapeEnded{}
		}
		return MsgTapeUpdate{Update: update}
	}
}
