package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter buffers reports and writes them on Close: a single report as an
// object, several as an array.
type JSONWriter struct {
	w       *bufio.Writer
	pretty  bool
	indent  string
	reports []Report
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
	}
}

// Write buffers a report.
func (w *JSONWriter) Write(r Report) error {
	w.reports = append(w.reports, r)
	return nil
}

// Close writes the buffered reports.
func (w *JSONWriter) Close() error {
	var data any = w.reports
	if len(w.reports) == 1 {
		data = w.reports[0]
	} else if w.reports == nil {
		data = []Report{}
	}

	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", w.indent)
	}
	if err := enc.Encode(data); err != nil {
		return err
	}
	return w.w.Flush()
}

// JSONLWriter writes one JSON object per line as reports arrive.
type JSONLWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &JSONLWriter{w: bw, enc: enc}
}

// Write writes a report as a JSON line.
func (w *JSONLWriter) Write(r Report) error {
	if err := w.enc.Encode(r); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.w.Flush()
}
