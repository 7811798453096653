package lint

import (
	"bytes"
	"encoding/json"

	"github.com/tildaslashalef/lintwire/internal/loggy"
)

// Decoder turns raw analyzer output chunks into ParseResult entries.
// The analyzer writes one JSON object per physical line, but a record may
// be split across chunk boundaries, so the decoder buffers the trailing
// partial line between Feed calls. Decoding is best effort and line
// isolated: a malformed line is logged and skipped without touching its
// neighbours or aborting the run.
type Decoder struct {
	logger *loggy.Logger

	// Trailing bytes of the last chunk that were not yet terminated
	// by a newline
	partial []byte
}

// NewDecoder creates a decoder for one analyzer run
func NewDecoder(logger *loggy.Logger) *Decoder {
	return &Decoder{
		logger: logger,
	}
}

// Feed consumes one output chunk, appending any complete records to the
// run's result. Chunks must be fed strictly in arrival order.
func (d *Decoder) Feed(chunk []byte, result *ParseResult) {
	data := append(d.partial, chunk...)

	lines := bytes.Split(data, []byte("\n"))

	// The final element is either empty (chunk ended on a newline) or a
	// partial record still waiting for the rest of its line.
	d.partial = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		d.decodeLine(line, result)
	}
}

// Flush decodes any buffered partial line. Called once after the
// analyzer's output stream is exhausted, in case the last record was not
// newline terminated.
func (d *Decoder) Flush(result *ParseResult) {
	line := d.partial
	d.partial = nil
	d.decodeLine(line, result)
}

// decodeLine parses a single line as one JSON record and classifies it
func (d *Decoder) decodeLine(line []byte, result *ParseResult) {
	line = bytes.TrimRight(line, "\r\n")
	if len(bytes.TrimSpace(line)) == 0 {
		return
	}

	var record rawRecord
	if err := json.Unmarshal(line, &record); err != nil {
		d.logger.Debug("Skipping malformed analyzer record",
			"error", err,
			"line", string(line),
		)
		return
	}

	switch record.Type {
	case recordTypeError:
		result.AddError(d.diagnostic(record))
	case recordTypeWarning:
		result.AddWarning(d.diagnostic(record))
	case recordTypeVariable:
		result.AddVariable(d.variable(record))
	default:
		d.logger.Debug("Ignoring analyzer record of unknown type", "type", record.Type)
	}
}

// diagnostic builds a Diagnostic from an error or warning record. The
// range is attached only when the record carried usable line and column
// arrays; diagnostics without positions are kept with a nil range.
func (d *Decoder) diagnostic(record rawRecord) Diagnostic {
	diag := Diagnostic{
		Message: record.text(),
	}
	if r, ok := mapSpan(record.Line, record.Column); ok {
		diag.Range = &r
	}
	return diag
}

// variable builds a VariableInfo from a variable record, mapping every
// definition and usage span in source order
func (d *Decoder) variable(record rawRecord) VariableInfo {
	return VariableInfo{
		Name:        record.Variable,
		Comment:     NormalizeComment(record.Comment),
		Definitions: mapSpans(record.Definitions),
		Usage:       mapSpans(record.Usage),
	}
}
