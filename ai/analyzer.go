package ai

import (
	"context"
	"errors"
	"fmt"
)

// DesignImage is the minimal projection sent to the model: identifier and
// image location only.
type DesignImage struct {
	ID       string
	ImageURL string
}

// AnalysisItem is one analyzed image. The model is instructed to echo the
// exact image ID it was given.
type AnalysisItem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Caption  string   `json:"caption"`
	Gender   string   `json:"gender"`
	Size     string   `json:"size"`
	BodyPart string   `json:"bodyPart"`
	Style    []string `json:"style"`
	Themes   []string `json:"themes"`
}

type Analysis struct {
	Analysis []AnalysisItem `json:"analysis"`
}

// Analyzer is the vision-model collaborator.
type Analyzer interface {
	Analyze(ctx context.Context, designs []DesignImage) (*Analysis, error)
}

var (
	// ErrMalformedOutput means the model produced text that is not the
	// expected JSON shape. Not retried.
	ErrMalformedOutput = errors.New("failed to parse JSON from model content")

	// ErrInvalidStructure means the model produced no usable result or the
	// result lacks an analysis list.
	ErrInvalidStructure = errors.New("model returned invalid structure")
)

// RefusalError carries the model's refusal text verbatim.
type RefusalError struct {
	Reason string
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("model refusal: %s", e.Reason)
}
