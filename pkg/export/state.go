package export

// Stage names one phase of an export run.
type Stage string

// Export stages in flow order. Failed is reachable from any stage.
const (
	StageIdle        Stage = "idle"
	StagePreparing   Stage = "preparing"
	StageExporting   Stage = "exporting"
	StageProcessing  Stage = "processing"
	StagePackaging   Stage = "packaging"
	StageDownloading Stage = "downloading"
	StageComplete    Stage = "complete"
	StageFailed      Stage = "failed"
)

// Progress describes how far the active export run has advanced.
type Progress struct {
	Stage      Stage // Current stage name
	Percentage int   // 0..100, non-decreasing within a run
}

// State is a read-only snapshot of the controller's observable state. The
// controller is the sole writer; callers receive copies and cannot influence
// the controller through them.
type State struct {
	Busy     bool     // An export run is in flight
	Progress Progress // Stage and percentage of the current or last run
	Error    string   // Message of the last failure, empty when none
}

// Idle reports whether the controller has no export in flight.
func (s State) Idle() bool { return !s.Busy }

// Failed reports whether the last run ended in an error.
func (s State) Failed() bool { return s.Error != "" }
