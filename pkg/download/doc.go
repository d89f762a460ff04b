// Package download implements the delivery end of the export pipeline.
//
// # Overview
//
// A [Payload] is the transient artifact a serializer produces: bytes, a MIME
// type, and the filename they should be saved under. A [Sink] is the
// download trigger — it hands the payload to its final destination exactly
// once, after which the payload is discarded.
//
// Two sinks are provided:
//
//   - [FileSink] saves artifacts into a directory using a temporary file
//     plus rename, so readers never see partial writes
//   - [WriterSink] streams artifacts into any io.Writer, which is how the
//     HTTP service turns an export into a browser download
//
// All delivery failures carry the DOWNLOAD_FAILED error code and wrap the
// underlying cause.
package download
