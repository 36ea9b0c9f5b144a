// Package prompt defines the prompt record and how one is assembled from user input.
//
// A Record is sparse: a field is stored only when the user supplied a non-blank
// value for it. OutputPreference is the exception and is always set on records
// produced by Build, falling back to DefaultOutputPreference.
package prompt

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DefaultOutputPreference is used when the user leaves the output preference blank.
const DefaultOutputPreference = "brief"

// StepSeparator joins steps when they are shown or edited as a single line.
const StepSeparator = ";"

// Record is a single prompt template. Field order matches the serialized order.
type Record struct {
	BaseQuestion     string   `json:"base_question,omitempty" yaml:"base_question,omitempty"`
	CharacterRole    string   `json:"character_role,omitempty" yaml:"character_role,omitempty"`
	Steps            []string `json:"steps,omitempty" yaml:"steps,omitempty"`
	ExampleOutput    string   `json:"example_output,omitempty" yaml:"example_output,omitempty"`
	StructureFormat  string   `json:"structure_format,omitempty" yaml:"structure_format,omitempty"`
	AdditionalNotes  string   `json:"additional_notes,omitempty" yaml:"additional_notes,omitempty"`
	OutputPreference string   `json:"output_preference,omitempty" yaml:"output_preference,omitempty"`
}

// Field names one of the record's keys.
type Field string

const (
	FieldBaseQuestion     Field = "base_question"
	FieldCharacterRole    Field = "character_role"
	FieldSteps            Field = "steps"
	FieldExampleOutput    Field = "example_output"
	FieldStructureFormat  Field = "structure_format"
	FieldAdditionalNotes  Field = "additional_notes"
	FieldOutputPreference Field = "output_preference"
)

// AllFields lists every field in serialized order.
var AllFields = []Field{
	FieldBaseQuestion,
	FieldCharacterRole,
	FieldSteps,
	FieldExampleOutput,
	FieldStructureFormat,
	FieldAdditionalNotes,
	FieldOutputPreference,
}

// Valid reports whether f is a known field name.
func (f Field) Valid() bool {
	for _, known := range AllFields {
		if f == known {
			return true
		}
	}
	return false
}

// Has reports whether the field is present on the record.
func (r Record) Has(f Field) bool {
	if f == FieldSteps {
		return len(r.Steps) > 0
	}
	return r.Value(f) != ""
}

// Value returns the field as a single line. Steps are joined with "; ".
func (r Record) Value(f Field) string {
	switch f {
	case FieldBaseQuestion:
		return r.BaseQuestion
	case FieldCharacterRole:
		return r.CharacterRole
	case FieldSteps:
		return strings.Join(r.Steps, StepSeparator+" ")
	case FieldExampleOutput:
		return r.ExampleOutput
	case FieldStructureFormat:
		return r.StructureFormat
	case FieldAdditionalNotes:
		return r.AdditionalNotes
	case FieldOutputPreference:
		return r.OutputPreference
	}
	return ""
}

// Set overwrites a field with value. Blank values are ignored, so the current
// value is kept. Steps are parsed from a ";"-separated line; a line with no
// non-blank steps also leaves the current steps untouched.
// It reports whether the record changed.
func (r *Record) Set(f Field, value string) bool {
	if IsBlank(value) {
		return false
	}
	switch f {
	case FieldBaseQuestion:
		r.BaseQuestion = value
	case FieldCharacterRole:
		r.CharacterRole = value
	case FieldSteps:
		steps := SplitSteps(value)
		if len(steps) == 0 {
			return false
		}
		r.Steps = steps
	case FieldExampleOutput:
		r.ExampleOutput = value
	case FieldStructureFormat:
		r.StructureFormat = value
	case FieldAdditionalNotes:
		r.AdditionalNotes = value
	case FieldOutputPreference:
		r.OutputPreference = value
	default:
		return false
	}
	return true
}

// Fields returns the fields present on the record, in serialized order.
func (r Record) Fields() []Field {
	fields := make([]Field, 0, len(AllFields))
	for _, f := range AllFields {
		if r.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r.Steps != nil {
		r.Steps = append([]string(nil), r.Steps...)
	}
	return r
}

// MarshalIndent renders the record as JSON with the given indent width,
// omitting absent fields.
func (r Record) MarshalIndent(indent int) ([]byte, error) {
	return EncodeIndent(r, indent)
}

// EncodeIndent renders v as JSON indented by indent spaces, without a
// trailing newline. Markup characters such as <, > and & are kept literal.
func EncodeIndent(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// SplitSteps parses a ";"-separated line into non-blank, trimmed steps.
func SplitSteps(line string) []string {
	var steps []string
	for _, part := range strings.Split(line, StepSeparator) {
		if s := strings.TrimSpace(part); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
