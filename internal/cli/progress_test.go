package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sceneforge/sceneport/pkg/export"
)

func TestProgressModelFollowsStates(t *testing.T) {
	updates := make(chan export.State, 4)
	m := NewExportProgressModel(updates)

	next, cmd := m.Update(stateMsg(export.State{
		Busy:     true,
		Progress: export.Progress{Stage: export.StageExporting, Percentage: 30},
	}))
	model := next.(ExportProgressModel)
	if model.state.Progress.Percentage != 30 {
		t.Errorf("percentage = %d, want 30", model.state.Progress.Percentage)
	}
	if cmd == nil {
		t.Error("expected a follow-up wait command while busy")
	}
	if !strings.Contains(model.View(), "exporting") {
		t.Errorf("view missing stage name: %q", model.View())
	}
}

func TestProgressModelQuitsOnTerminalStage(t *testing.T) {
	updates := make(chan export.State)
	m := NewExportProgressModel(updates)

	next, cmd := m.Update(stateMsg(export.State{
		Progress: export.Progress{Stage: export.StageComplete, Percentage: 100},
	}))
	model := next.(ExportProgressModel)
	if !model.done {
		t.Error("model should be done on complete stage")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("expected tea.Quit, got %T", msg)
	}
}

func TestProgressModelQuitsOnClosedChannel(t *testing.T) {
	updates := make(chan export.State)
	close(updates)
	m := NewExportProgressModel(updates)

	msg := m.Init()()
	if _, ok := msg.(closedMsg); !ok {
		t.Fatalf("expected closedMsg from closed channel, got %T", msg)
	}
	next, cmd := m.Update(msg)
	if !next.(ExportProgressModel).done {
		t.Error("model should be done after channel close")
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
}

func TestRenderBarClamps(t *testing.T) {
	out := renderBar(export.Progress{Stage: export.StageComplete, Percentage: 100})
	if !strings.Contains(out, "100%") {
		t.Errorf("bar missing percentage: %q", out)
	}
	if strings.Contains(out, "░") {
		t.Errorf("full bar should have no empty cells: %q", out)
	}
}
