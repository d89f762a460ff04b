package download

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sceneforge/sceneport/pkg/errors"
	"github.com/sceneforge/sceneport/pkg/observability"
)

// FileSink saves payloads into a directory. The payload is first written to
// a temporary file and then renamed into place, so readers never observe a
// partially written artifact. The temporary file is removed on any failure.
type FileSink struct {
	// Dir is the destination directory. It is created on first delivery if
	// it does not exist.
	Dir string
}

// NewFileSink creates a sink that saves payloads under dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Deliver writes the payload to Dir/p.Filename. Failures are reported as
// DOWNLOAD_FAILED errors wrapping the underlying cause.
func (s *FileSink) Deliver(ctx context.Context, p Payload) error {
	start := time.Now()
	observability.Sink().OnDeliverStart(ctx, "file", p.Filename, p.Size())

	err := s.deliver(p)
	observability.Sink().OnDeliverComplete(ctx, "file", p.Filename, time.Since(start), err)
	return err
}

func (s *FileSink) deliver(p Payload) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeDownloadFailed, err, "create output directory %s", s.Dir)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+p.Filename+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeDownloadFailed, err, "create temporary file in %s", s.Dir)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(p.Data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeDownloadFailed, err, "write %s", p.Filename)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeDownloadFailed, err, "close %s", p.Filename)
	}

	final := filepath.Join(s.Dir, p.Filename)
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(errors.ErrCodeDownloadFailed, err, "rename into %s", final)
	}
	return nil
}

// Path returns the destination path a payload with the given filename would
// be saved under.
func (s *FileSink) Path(filename string) string {
	return filepath.Join(s.Dir, filename)
}
