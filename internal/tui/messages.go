package tui

import "github.com/vito/progrock"

// MsgTapeUpdate wraps the next raw update from the progress stream.
type MsgTapeUpdate struct {
	Update *progrock.StatusUpdate
}

// MsgTapeEnded is sent when the progress stream has ended.
type MsgTapeEnded struct {
	Err error
}
