package export

import (
	"context"
	stderrors "errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sceneforge/sceneport/pkg/download"
	"github.com/sceneforge/sceneport/pkg/errors"
	"github.com/sceneforge/sceneport/pkg/observability"
	"github.com/sceneforge/sceneport/pkg/scene"
)

const (
	// DefaultBaseName is the base filename used when the caller supplies none.
	DefaultBaseName = "model"

	// DefaultWarnSize is the payload size above which a warning is logged.
	// The warning is advisory only and never blocks the export.
	DefaultWarnSize = 100 << 20 // 100 MiB

	// subscriberBuffer is the channel capacity handed to each subscriber.
	// A single run emits well under this many state updates.
	subscriberBuffer = 32
)

// Controller orchestrates export runs: it drives a format serializer,
// packages the result into a payload, hands it to the download sink, and
// maintains the observable state around the run.
//
// A controller accepts one export at a time; a second call while a run is
// in flight fails with an EXPORT_BUSY error. The controller is the sole
// writer of its state, and the scene passed to an export is never modified.
type Controller struct {
	mu          sync.Mutex
	state       State
	subs        map[int]chan State
	nextSub     int
	sink        download.Sink
	serializers map[Format]Serializer
	logger      *log.Logger
	pacing      time.Duration
	warnSize    int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithPacing inserts a cosmetic delay after each administrative stage
// transition so UI observers can perceive the stage sequence. The delay has
// no functional purpose; the default is zero.
func WithPacing(d time.Duration) Option {
	return func(c *Controller) { c.pacing = d }
}

// WithWarnSize overrides the payload size warning threshold in bytes.
func WithWarnSize(n int) Option {
	return func(c *Controller) { c.warnSize = n }
}

// WithSerializer replaces the serializer for one format. Primarily used by
// tests to substitute failing or recording serializers.
func WithSerializer(f Format, s Serializer) Option {
	return func(c *Controller) { c.serializers[f] = s }
}

// NewController creates a controller that delivers payloads to sink.
func NewController(sink download.Sink, opts ...Option) *Controller {
	c := &Controller{
		state:       State{Progress: Progress{Stage: StageIdle}},
		subs:        make(map[int]chan State),
		sink:        sink,
		serializers: defaultSerializers(),
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
		warnSize:    DefaultWarnSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the observable export state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers a state observer. Every state mutation is published
// to the returned channel in mutation order; slow consumers lose updates
// rather than blocking the export flow. The returned cancel function
// unregisters the observer and closes the channel.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan State, subscriberBuffer)
	c.subs[id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if ch, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// ClearError resets the observable error without touching busy or progress.
func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = ""
	c.publishLocked()
}

// ExportGLB exports the scene as a binary glTF container (.glb).
func (c *Controller) ExportGLB(ctx context.Context, root *scene.Scene, filename string) error {
	return c.Export(ctx, root, FormatGLB, filename)
}

// ExportGLTF exports the scene as a JSON glTF document (.gltf).
func (c *Controller) ExportGLTF(ctx context.Context, root *scene.Scene, filename string) error {
	return c.Export(ctx, root, FormatGLTF, filename)
}

// ExportSTL exports the scene as binary STL (.stl).
func (c *Controller) ExportSTL(ctx context.Context, root *scene.Scene, filename string) error {
	return c.Export(ctx, root, FormatSTL, filename)
}

// ExportOBJ exports the scene as Wavefront OBJ text (.obj).
func (c *Controller) ExportOBJ(ctx context.Context, root *scene.Scene, filename string) error {
	return c.Export(ctx, root, FormatOBJ, filename)
}

// Export runs the full export flow for one format: serialize, package,
// deliver. filename is the base name without extension; empty means
// DefaultBaseName. The scene is never modified.
//
// All failures are recorded in the observable state and returned; busy is
// cleared on every exit path. There is no retry and no cancellation of an
// in-flight run.
func (c *Controller) Export(ctx context.Context, root *scene.Scene, format Format, filename string) error {
	// Input validation happens before any state mutation.
	if root == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no scene root supplied")
	}
	if !format.Valid() {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", string(format))
	}
	if filename == "" {
		filename = DefaultBaseName
	}
	if err := errors.ValidateBaseFilename(filename); err != nil {
		return err
	}

	if err := c.begin(); err != nil {
		return err
	}

	id := uuid.NewString()[:8]
	logger := c.logger.With("export", id, "format", string(format))
	start := time.Now()
	observability.Export().OnExportStart(ctx, id, string(format))

	size, err := c.run(ctx, logger, id, root, format, filename)
	observability.Export().OnExportComplete(ctx, id, string(format), size, time.Since(start), err)

	if err != nil {
		logger.Errorf("Export failed: %v", err)
		c.fail(err)
		return err
	}

	logger.Infof("Export complete (%s)", time.Since(start).Round(time.Millisecond))
	c.complete(ctx, id)
	return nil
}

// begin claims the controller for a new run, resetting prior progress and
// error state. It fails with EXPORT_BUSY when a run is already in flight.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return errors.New(errors.ErrCodeExportBusy, "an export is already in progress")
	}
	c.state = State{Busy: true, Progress: Progress{Stage: StagePreparing, Percentage: 0}}
	c.publishLocked()
	return nil
}

// run drives the stage sequence and returns the payload size on success.
func (c *Controller) run(ctx context.Context, logger *log.Logger, id string, root *scene.Scene, format Format, filename string) (int, error) {
	info := formats[format]

	c.setStage(ctx, id, StageExporting, 30)
	logger.Debug("Serializing scene")

	data, err := c.serializers[format].Serialize(ctx, root)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeSerializationFailed, err, "serialize %s", string(format))
	}

	c.setStage(ctx, id, StageProcessing, info.processingPct)
	if len(data) == 0 {
		return 0, errors.New(errors.ErrCodePayloadFailed, "serializer produced an empty %s payload", string(format))
	}

	c.setStage(ctx, id, StagePackaging, 80)
	payload := download.Payload{
		Data:        data,
		ContentType: info.contentType,
		Filename:    filename + info.extension,
	}

	logger.Infof("Serialized %s: %d bytes", payload.Filename, payload.Size())
	if payload.Size() > c.warnSize {
		logger.Warnf("Payload exceeds %d bytes (%d); the download may be slow", c.warnSize, payload.Size())
	}

	c.setStage(ctx, id, StageDownloading, 95)
	if err := c.sink.Deliver(ctx, payload); err != nil {
		if errors.GetCode(err) != "" {
			return payload.Size(), err
		}
		return payload.Size(), errors.Wrap(errors.ErrCodeDownloadFailed, err, "deliver %s", payload.Filename)
	}

	return payload.Size(), nil
}

// setStage advances the progress descriptor and publishes the update.
func (c *Controller) setStage(ctx context.Context, id string, stage Stage, pct int) {
	c.mu.Lock()
	c.state.Progress = Progress{Stage: stage, Percentage: pct}
	c.publishLocked()
	c.mu.Unlock()

	observability.Export().OnStage(ctx, id, string(stage), pct)
	if c.pacing > 0 {
		time.Sleep(c.pacing)
	}
}

// complete marks the run successful: busy cleared, progress at 100.
func (c *Controller) complete(ctx context.Context, id string) {
	c.mu.Lock()
	c.state.Busy = false
	c.state.Progress = Progress{Stage: StageComplete, Percentage: 100}
	c.publishLocked()
	c.mu.Unlock()

	observability.Export().OnStage(ctx, id, string(StageComplete), 100)
}

// fail records the failure message and clears busy. The percentage is left
// where the run stopped.
func (c *Controller) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Busy = false
	c.state.Progress.Stage = StageFailed
	c.state.Error = failureMessage(err)
	c.publishLocked()
}

// failureMessage extracts the innermost cause message so observers see the
// serializer's own words, not the wrapping added along the way.
func failureMessage(err error) string {
	for {
		next := stderrors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// publishLocked fans the current state out to all subscribers. Callers must
// hold c.mu. Sends never block; a subscriber that falls behind misses
// intermediate updates.
func (c *Controller) publishLocked() {
	for _, ch := range c.subs {
		select {
		case ch <- c.state:
		default:
		}
	}
}
