//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type stubTape struct {
	updates []*progrock.StatusUpdate
}

func (s *stubTape) Read() (*progrock.StatusUpdate, error) {
	if len(s.updates) == 0 {
		return nil, io.EOF
	}
	update := s.updates[0]
	s.updates = s.updates[1:]
	return update, nil
}

func errString(s string) *string { return &s }

func TestModel_TapeUpdateAddsRunningRule(t *testing.T) {
	m := NewModel(&stubTape{})

	update := &progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "//lib:core"},
		},
	}
	_, cmd := m.Update(MsgTapeUpdate{Update: update})

	require.Len(t, m.rules, 1)
	require.Equal(t, "//lib:core", m.rules[0].name)
	require.Equal(t, statusRunning, m.rules[0].status)
	require.NotNil(t, cmd, "must keep reading the tape")
}

func TestModel_CompletionTransitions(t *testing.T) {
	now := timestamppb.New(time.Now())
	cases := []struct {
		name   string
		vertex *progrock.Vertex
		want   string
	}{
		{"success", &progrock.Vertex{Id: "1", Completed: now}, statusDone},
		{"failure", &progrock.Vertex{Id: "1", Completed: now, Error: errString("boom")}, statusFailed},
		{"cache hit", &progrock.Vertex{Id: "1", Completed: now, Cached: true}, statusCached},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModel(&stubTape{})
			m.rules = []ruleView{{id: "1", name: "//lib:core", status: statusRunning}}

			m.Update(MsgTapeUpdate{Update: &progrock.StatusUpdate{
				Vertexes: []*progrock.Vertex{tc.vertex},
			}})

			require.Equal(t, tc.want, m.rules[0].status)
		})
	}
}

func TestModel_TapeEndedQuits(t *testing.T) {
	m := NewModel(&stubTape{})
	_, cmd := m.Update(MsgTapeEnded{})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := NewModel(&stubTape{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ViewRendersStatuses(t *testing.T) {
	m := NewModel(&stubTape{})
	m.rules = []ruleView{
		{id: "1", name: "//lib:core", status: statusDone},
		{id: "2", name: "//lib:cached", status: statusCached},
		{id: "3", name: "//app:bin", status: statusFailed},
	}

	view := m.View()
	require.Contains(t, view, "//lib:core")
	require.Contains(t, view, "//lib:cached (cached)")
	require.Contains(t, view, "//app:bin")
	require.Contains(t, view, "✓")
	require.Contains(t, view, "✗")
}

func TestModel_ViewShowsTailWhenOverflowing(t *testing.T) {
	m := NewModel(&stubTape{})
	m.height = 2
	m.rules = []ruleView{
		{id: "1", name: "//a:first", status: statusDone},
		{id: "2", name: "//b:second", status: statusDone},
		{id: "3", name: "//c:third", status: statusDone},
	}

	view := m.View()
	require.NotContains(t, view, "//a:first")
	require.Contains(t, view, "//b:second")
	require.Contains(t, view, "//c:third")
}

func TestWaitForTape_EndsOnEOF(t *testing.T) {
	msg := WaitForTape(&stubTape{})()
	require.IsType(t, MsgTapeEnded{}, msg)
	require.NoError(t, msg.(MsgTapeEnded).Err)
}
