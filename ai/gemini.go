package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"
)

const systemInstruction = "You are an expert Tattoo Archivist. Analyze the images strictly."

const analysisInstruction = `Analyze these tattoo images. Return a JSON object with the metadata.
For 'id', use the exact Image ID provided.`

// analysisSchema constrains the model to the fixed analysis shape.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"analysis": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":      {Type: genai.TypeString},
					"title":   {Type: genai.TypeString},
					"caption": {Type: genai.TypeString},
					"gender": {
						Type: genai.TypeString,
						Enum: []string{"MALE", "FEMALE", "UNISEX"},
					},
					"size": {
						Type: genai.TypeString,
						Enum: []string{"SMALL", "MEDIUM", "LARGE", "EXTRA_LARGE", "FULL_COVERAGE"},
					},
					"bodyPart": {Type: genai.TypeString},
					"style":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"themes":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"id", "title", "caption", "gender", "size", "bodyPart", "style", "themes"},
			},
		},
	},
	Required: []string{"analysis"},
}

// GeminiAnalyzer runs one batched vision request per Analyze call.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

func NewGeminiAnalyzer(ctx context.Context, model string) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiAnalyzer{client: client, model: model}, nil
}

func (a *GeminiAnalyzer) Analyze(ctx context.Context, designs []DesignImage) (*Analysis, error) {
	parts := []*genai.Part{genai.NewPartFromText(analysisInstruction)}
	for _, design := range designs {
		parts = append(parts,
			genai.NewPartFromText(fmt.Sprintf("Image ID: %s", design.ID)),
			genai.NewPartFromURI(design.ImageURL, "image/jpeg"),
		)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(systemInstruction)}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    analysisSchema,
		MediaResolution:   genai.MediaResolutionLow,
		Temperature:       genai.Ptr(float32(0.2)),
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, []*genai.Content{
		{Role: genai.RoleUser, Parts: parts},
	}, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if reason := refusalReason(resp); reason != "" {
		return nil, &RefusalError{Reason: reason}
	}

	return parseAnalysis(resp.Text())
}

// refusalReason reports a non-empty reason when the model declined the
// request outright, either at the prompt or the candidate level.
func refusalReason(resp *genai.GenerateContentResponse) string {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		if resp.PromptFeedback.BlockReasonMessage != "" {
			return resp.PromptFeedback.BlockReasonMessage
		}
		return string(resp.PromptFeedback.BlockReason)
	}

	for _, cand := range resp.Candidates {
		switch cand.FinishReason {
		case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent, genai.FinishReasonBlocklist:
			return string(cand.FinishReason)
		}
	}

	return ""
}

var fencePattern = regexp.MustCompile("(?s)^\\s*```(?:json|JSON)?\\s*\\n?(.*?)\\n?\\s*```\\s*$")

// cleanMarkdownFences strips a surrounding markdown code fence when the model
// ignored the JSON response mime type.
func cleanMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if matches := fencePattern.FindStringSubmatch(s); len(matches) > 1 {
		s = matches[1]
	}
	return strings.TrimSpace(s)
}

// parseAnalysis applies the fixed parse policy: empty content is an invalid
// structure, non-JSON content is malformed output, and a missing analysis
// list is an invalid structure. Parse failures are terminal, never retried.
func parseAnalysis(text string) (*Analysis, error) {
	text = cleanMarkdownFences(text)
	if text == "" {
		return nil, ErrInvalidStructure
	}

	var result Analysis
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	if result.Analysis == nil {
		return nil, ErrInvalidStructure
	}

	return &result, nil
}
