package download

import (
	"context"
	"io"
	"time"

	"github.com/sceneforge/sceneport/pkg/errors"
	"github.com/sceneforge/sceneport/pkg/observability"
)

// WriterSink streams payload bytes into an io.Writer. It is used by the HTTP
// layer (writing into the response body) and by tests capturing exports
// in-memory. The writer is used for a single delivery.
type WriterSink struct {
	W io.Writer

	// Delivered records the metadata of the last delivered payload. The
	// payload bytes themselves are not retained.
	Delivered *Payload
}

// NewWriterSink creates a sink that streams payloads into w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{W: w}
}

// Deliver writes the payload bytes to the underlying writer. Failures are
// reported as DOWNLOAD_FAILED errors wrapping the underlying cause.
func (s *WriterSink) Deliver(ctx context.Context, p Payload) error {
	start := time.Now()
	observability.Sink().OnDeliverStart(ctx, "writer", p.Filename, p.Size())

	_, err := s.W.Write(p.Data)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeDownloadFailed, err, "stream %s", p.Filename)
	} else {
		s.Delivered = &Payload{ContentType: p.ContentType, Filename: p.Filename}
	}

	observability.Sink().OnDeliverComplete(ctx, "writer", p.Filename, time.Since(start), err)
	return err
}
