// Package lint provides a coalescing client for the external analyzer.
// Source text submitted by callers is debounced, fed to the analyzer
// subprocess on stdin, and its line-delimited JSON output is converted
// into diagnostics and variable usage records with editor-friendly
// (zero-based, half-open) ranges.
package lint

import "strings"

// Position is a zero-based location in source text
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a span in source text. The end character is exclusive,
// following the half-open convention editors expect.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is a single error or warning reported by the analyzer.
// Range is nil when the raw record carried no position information.
type Diagnostic struct {
	Message string `json:"message"`
	Range   *Range `json:"range,omitempty"`
}

// VariableInfo aggregates definition and usage data for one identifier
type VariableInfo struct {
	Name        string  `json:"name"`
	Comment     string  `json:"comment"`
	Definitions []Range `json:"definitions"`
	Usage       []Range `json:"usage"`
}

// IsLocal reports whether the variable is local by the analyzed
// language's convention of prefixing local identifiers with underscore
func (v VariableInfo) IsLocal() bool {
	return strings.HasPrefix(v.Name, "_")
}

// ParseResult is the accumulated output of one analyzer run. Entries are
// appended in arrival order while the run is active and the result must
// not be mutated after the run settles.
type ParseResult struct {
	Errors    []Diagnostic   `json:"errors"`
	Warnings  []Diagnostic   `json:"warnings"`
	Variables []VariableInfo `json:"variables"`
}

// NewParseResult creates an empty result for a fresh run
func NewParseResult() *ParseResult {
	return &ParseResult{
		Errors:    []Diagnostic{},
		Warnings:  []Diagnostic{},
		Variables: []VariableInfo{},
	}
}

// AddError appends an error diagnostic in arrival order
func (r *ParseResult) AddError(d Diagnostic) {
	r.Errors = append(r.Errors, d)
}

// AddWarning appends a warning diagnostic in arrival order
func (r *ParseResult) AddWarning(d Diagnostic) {
	r.Warnings = append(r.Warnings, d)
}

// AddVariable appends a variable record in arrival order
func (r *ParseResult) AddVariable(v VariableInfo) {
	r.Variables = append(r.Variables, v)
}

// HasErrors reports whether the run produced any error diagnostics
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// rawRecord is one line of analyzer output before classification.
// The analyzer emits one JSON object per physical line; which fields are
// populated depends on the record type.
type rawRecord struct {
	Type        string    `json:"type"`
	Error       string    `json:"error"`
	Message     string    `json:"message"`
	Variable    string    `json:"variable"`
	Comment     string    `json:"comment"`
	Line        []int     `json:"line"`
	Column      []int     `json:"column"`
	Definitions []rawSpan `json:"definitions"`
	Usage       []rawSpan `json:"usage"`
}

// rawSpan is a one-based, end-inclusive position pair as emitted by the
// analyzer: line [startLine, endLine], column [startColumn, endColumn]
type rawSpan struct {
	Line   []int `json:"line"`
	Column []int `json:"column"`
}

// Record types the decoder classifies on; anything else is ignored
const (
	recordTypeError    = "error"
	recordTypeWarning  = "warning"
	recordTypeVariable = "variable"
)

// text returns the diagnostic text of an error/warning record, favouring
// the error field and falling back to message
func (r rawRecord) text() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}
