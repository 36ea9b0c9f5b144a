package prompt

import (
	"context"
	"fmt"
)

// Inputs is the raw answer bundle for a new prompt, in the order it is asked.
type Inputs struct {
	BaseQuestion     string
	CharacterRole    string
	DescribeSteps    bool
	Steps            []string
	ExampleOutput    string
	HasStructure     bool
	StructureFormat  string
	AdditionalNotes  string
	OutputPreference string
}

// Build turns the raw inputs into a record. Only non-blank optional fields are
// set; steps are kept only when DescribeSteps is true, and structure format
// only when HasStructure is true.
func Build(in Inputs) Record {
	var rec Record

	if !IsBlank(in.BaseQuestion) {
		rec.BaseQuestion = in.BaseQuestion
	}
	if !IsBlank(in.CharacterRole) {
		rec.CharacterRole = in.CharacterRole
	}
	if in.DescribeSteps {
		for _, step := range in.Steps {
			if !IsBlank(step) {
				rec.Steps = append(rec.Steps, step)
			}
		}
	}
	if !IsBlank(in.ExampleOutput) {
		rec.ExampleOutput = in.ExampleOutput
	}
	if in.HasStructure && !IsBlank(in.StructureFormat) {
		rec.StructureFormat = in.StructureFormat
	}
	if !IsBlank(in.AdditionalNotes) {
		rec.AdditionalNotes = in.AdditionalNotes
	}

	rec.OutputPreference = DefaultOutputPreference
	if !IsBlank(in.OutputPreference) {
		rec.OutputPreference = in.OutputPreference
	}

	return rec
}

// Prompter collects answers from the user. Implementations block until the
// user answers.
type Prompter interface {
	// Ask shows label and returns the line the user typed, without the newline.
	Ask(ctx context.Context, label string) (string, error)

	// Confirm shows label and returns the user's yes/no answer.
	Confirm(ctx context.Context, label string) (bool, error)
}

// Question labels, in the order Collect asks them.
const (
	LabelBaseQuestion     = "Base Question"
	LabelCharacterRole    = "Relative Character/Role"
	LabelDescribeSteps    = "Can you describe the Question in Steps?"
	LabelFirstStep        = "Enter a step"
	LabelNextStep         = "Enter next step (leave blank to finish)"
	LabelExampleOutput    = "Provide Example Output"
	LabelHasStructure     = "Does the output consist of any structure/format/language?"
	LabelStructureFormat  = "Select Structure/Format (e.g., Python, English, JSON, XML, Markdown)"
	LabelAdditionalNotes  = "Any further notes/rules"
	LabelOutputPreference = "Output Preference (brief/summarize) (default: brief)"
)

// Collect asks the question sequence for a new prompt.
//
// When the user opts into steps, the first step is always asked; further steps
// are asked until a blank entry. A blank first step ends step entry at once.
func Collect(ctx context.Context, p Prompter) (Inputs, error) {
	var (
		in  Inputs
		err error
	)

	if in.BaseQuestion, err = p.Ask(ctx, LabelBaseQuestion); err != nil {
		return in, fmt.Errorf("base question: %w", err)
	}
	if in.CharacterRole, err = p.Ask(ctx, LabelCharacterRole); err != nil {
		return in, fmt.Errorf("character role: %w", err)
	}

	if in.DescribeSteps, err = p.Confirm(ctx, LabelDescribeSteps); err != nil {
		return in, fmt.Errorf("describe steps: %w", err)
	}
	if in.DescribeSteps {
		if in.Steps, err = collectSteps(ctx, p); err != nil {
			return in, err
		}
	}

	if in.ExampleOutput, err = p.Ask(ctx, LabelExampleOutput); err != nil {
		return in, fmt.Errorf("example output: %w", err)
	}

	if in.HasStructure, err = p.Confirm(ctx, LabelHasStructure); err != nil {
		return in, fmt.Errorf("has structure: %w", err)
	}
	if in.HasStructure {
		if in.StructureFormat, err = p.Ask(ctx, LabelStructureFormat); err != nil {
			return in, fmt.Errorf("structure format: %w", err)
		}
	}

	if in.AdditionalNotes, err = p.Ask(ctx, LabelAdditionalNotes); err != nil {
		return in, fmt.Errorf("additional notes: %w", err)
	}
	if in.OutputPreference, err = p.Ask(ctx, LabelOutputPreference); err != nil {
		return in, fmt.Errorf("output preference: %w", err)
	}

	return in, nil
}

func collectSteps(ctx context.Context, p Prompter) ([]string, error) {
	step, err := p.Ask(ctx, LabelFirstStep)
	if err != nil {
		return nil, fmt.Errorf("first step: %w", err)
	}
	if IsBlank(step) {
		return nil, nil
	}

	steps := []string{step}
	for {
		step, err := p.Ask(ctx, LabelNextStep)
		if err != nil {
			return nil, fmt.Errorf("next step: %w", err)
		}
		if IsBlank(step) {
			return steps, nil
		}
		steps = append(steps, step)
	}
}
