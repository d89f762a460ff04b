package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sceneforge/sceneport/pkg/export"
)

// barWidth is the character width of the progress bar.
const barWidth = 30

// =============================================================================
// ExportProgressModel - Live export progress display
// =============================================================================

// ExportProgressModel is the bubbletea model that renders export progress
// from a controller state subscription. It quits on its own once the run
// reaches a terminal stage and the subscription closes.
type ExportProgressModel struct {
	updates <-chan export.State
	state   export.State
	done    bool
}

// NewExportProgressModel creates a progress model fed by updates.
func NewExportProgressModel(updates <-chan export.State) ExportProgressModel {
	return ExportProgressModel{
		updates: updates,
		state:   export.State{Progress: export.Progress{Stage: export.StagePreparing}},
	}
}

// stateMsg carries one controller state update into the bubbletea loop.
type stateMsg export.State

// closedMsg signals that the subscription channel was closed.
type closedMsg struct{}

func waitForState(updates <-chan export.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return stateMsg(st)
	}
}

func (m ExportProgressModel) Init() tea.Cmd {
	return waitForState(m.updates)
}

func (m ExportProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// There is no cancelling an in-flight export; keys only quit the
		// display, never the run.
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
	case stateMsg:
		m.state = export.State(msg)
		if !m.state.Busy && (m.state.Progress.Stage == export.StageComplete || m.state.Progress.Stage == export.StageFailed) {
			m.done = true
			return m, tea.Quit
		}
		return m, waitForState(m.updates)
	case closedMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ExportProgressModel) View() string {
	if m.done {
		return ""
	}
	return renderBar(m.state.Progress) + "\n"
}

// renderBar draws a stage label and a percentage bar.
func renderBar(p export.Progress) string {
	filled := p.Percentage * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	bar := styleBarFilled.Render(strings.Repeat("█", filled)) +
		styleBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	label := StyleHighlight.Render(string(p.Stage))
	return fmt.Sprintf("%s %s %3d%%", bar, label, p.Percentage)
}
