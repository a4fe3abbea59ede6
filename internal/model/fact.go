package model

import "strconv"

// Fact is one item extracted from a source file: a constant, a configuration
// default, an error code or an RPC method
type Fact struct {
	Name            string `json:"name"`                       // Identifier or setting name
	KindTag         string `json:"kind_tag,omitempty"`         // Declared type, return type or origin tag
	RawValue        string `json:"raw_value,omitempty"`        // Value text as written in the source
	NormalizedValue string `json:"normalized_value,omitempty"` // Value as rendered in the document
	Description     string `json:"description,omitempty"`      // Doc comment or message text
	Category        string `json:"category,omitempty"`         // Label assigned by a classifier
	Source          string `json:"source,omitempty"`           // Origin within the file, e.g. the function name
	Line            int    `json:"line,omitempty"`
}

// ErrorCodeEntry is an error variant together with its wire code and message
type ErrorCodeEntry struct {
	Fact
	Code    int    `json:"code"`
	HasCode bool   `json:"has_code"`
	Message string `json:"message,omitempty"`
}

// CodeText renders the code, or "N/A" when the variant has none
func (e ErrorCodeEntry) CodeText() string {
	if !e.HasCode {
		return "N/A"
	}
	return strconv.Itoa(e.Code)
}

// DiagnosticKind classifies a problem found while resolving source facts
type DiagnosticKind string

const (
	DiagUnknownVariant DiagnosticKind = "unknown_variant" // Dispatch arm names a variant the enum does not declare
	DiagMissingCode    DiagnosticKind = "missing_code"    // Variant has no code() arm
	DiagMissingMessage DiagnosticKind = "missing_message" // Variant has no message() arm
	DiagBadValue       DiagnosticKind = "bad_value"       // Arm value is not a literal of the expected kind
)

// Diagnostic reports a mismatch between declarations and their dispatch
// functions. Diagnostics never stop generation.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Subject string         `json:"subject"` // Variant or item the diagnostic is about
	Message string         `json:"message"`
	Line    int            `json:"line,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return string(d.Kind) + ": " + d.Subject + " (line " + strconv.Itoa(d.Line) + "): " + d.Message
	}
	return string(d.Kind) + ": " + d.Subject + ": " + d.Message
}
