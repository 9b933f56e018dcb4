package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

// Diagnostic codes reported by a generation pass.
const (
	// CodeUnresolvedCandidate: annotated syntax that has no symbol in the semantic view.
	CodeUnresolvedCandidate = "unresolved-candidate"
	// CodeMarkerInjection: the marker annotation type could not be made resolvable.
	CodeMarkerInjection = "marker-injection"
	// CodeKeyCollision: two generated units share an emission key or output path.
	CodeKeyCollision = "key-collision"
	// CodeParamCollision: two parameters of one constructor derive the same name.
	CodeParamCollision = "param-collision"
	CodeInvalidParam   = "invalid-param"
	CodeCtorExists     = "ctor-exists"
	CodeBadInitializer = "bad-initializer"
	CodeBadAnnotation  = "bad-annotation"
	CodeLocalType      = "local-type"
	CodeNotStruct      = "not-struct"
	CodeLoadError      = "load-error"
	CodeGenerate       = "generate-failed"
	// CodeUnknownAnnotation: an annotation that looks like a misspelled marker.
	CodeUnknownAnnotation = "unknown-annotation"
)

// Diagnostics holds all diagnostic information from a generation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Type is the qualified name of the type this relates to (if any).
	Type string
	// Field identifies which field this relates to (if any).
	Field string
	// Pos is the source location (if known).
	Pos token.Position
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
	SeverityError                   // error
)

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, field string, pos token.Position) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
		Pos:      pos,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, field string, pos token.Position) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
		Pos:      pos,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, field string, pos token.Position) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Type:     typeName,
		Field:    field,
		Pos:      pos,
	})
}

// Add appends a fully built diagnostic to the bucket of its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// ByCode returns the diagnostics carrying the given code, in severity order.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String()+":")
	}

	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}

// PositionError is an error tied to a location in source.
type PositionError struct {
	err error
	pos token.Position
}

// NewPositionError returns err associated with the given source location.
func NewPositionError(pos token.Position, err error) *PositionError {
	return &PositionError{err: err, pos: pos}
}

// Error implements the error interface. It includes position information in the
// returned message.
func (e *PositionError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.pos.Filename, e.pos.Line, e.pos.Column, e.err.Error())
}

// Unwrap returns the underlying error.
func (e *PositionError) Unwrap() error {
	return e.err
}

// Pos returns the location in source where the underlying error was
// encountered.
func (e *PositionError) Pos() token.Position {
	return e.pos
}
