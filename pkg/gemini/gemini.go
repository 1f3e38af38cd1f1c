// Package gemini implements generation.Generator against the Google
// Gemini generateContent API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafael-ulguim1/askgemini/pkg/generation"
)

var _ generation.Generator = (*Adapter)(nil)

// Generate sends one prompt to the Gemini API and returns the normalized
// result. The prompt is validated before any network call; all failures
// surface as one of the generation error kinds.
func (a *Adapter) Generate(ctx context.Context, req generation.Request) (generation.Result, error) {
	if err := req.Validate(); err != nil {
		return generation.Result{}, err
	}

	model := req.Params.Model
	if model == "" {
		model = generation.DefaultModel
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", model)

	a.Logger.Debug().
		Str("model", model).
		Int("prompt_chars", len(req.Prompt)).
		Msg("calling generateContent")

	var resp apiResponse
	if err := a.postJSON(ctx, path, buildRequest(req), &resp); err != nil {
		return generation.Result{}, err
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return generation.Result{}, &generation.RejectionError{
			Code:    resp.PromptFeedback.BlockReason,
			Message: "prompt blocked by safety filters",
		}
	}

	if len(resp.Candidates) == 0 {
		return generation.Result{}, &generation.ResponseError{Reason: "empty candidates in response"}
	}

	cand := resp.Candidates[0]

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		sb.WriteString(p.Text)
	}

	text := sb.String()
	if text == "" {
		return generation.Result{}, &generation.ResponseError{
			Reason: fmt.Sprintf("candidate contains no text (finishReason %q)", cand.FinishReason),
		}
	}

	a.Logger.Debug().
		Str("finish_reason", cand.FinishReason).
		Int("input_tokens", resp.UsageMetadata.PromptTokenCount).
		Int("output_tokens", resp.UsageMetadata.CandidatesTokenCount).
		Msg("generateContent done")

	return generation.Result{
		Text:         text,
		FinishReason: cand.FinishReason,
		Usage: generation.Usage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

// --- request types ---

type apiRequest struct {
	Contents          []apiContent     `json:"contents"`
	SystemInstruction *apiContent      `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens"`
	TopP            *float64 `json:"topP,omitempty"`
	TopK            *int     `json:"topK,omitempty"`
}

// --- response types ---

type apiResponse struct {
	Candidates     []apiCandidate  `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback"`
	UsageMetadata  apiUsageMeta    `json:"usageMetadata"`
}

type apiCandidate struct {
	Content      apiContent `json:"content"`
	FinishReason string     `json:"finishReason"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type apiUsageMeta struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// buildRequest maps a generation.Request onto the Gemini wire format.
// Zero-valued sampling parameters are omitted so the service applies its
// own defaults.
func buildRequest(req generation.Request) apiRequest {
	p := req.Params

	out := apiRequest{
		Contents: []apiContent{{
			Role:  "user",
			Parts: []apiPart{{Text: req.Prompt}},
		}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: p.MaxOutputTokens,
		},
	}

	if out.GenerationConfig.MaxOutputTokens <= 0 {
		out.GenerationConfig.MaxOutputTokens = generation.DefaultMaxOutputTokens
	}

	if p.Temperature != 0 {
		t := p.Temperature
		out.GenerationConfig.Temperature = &t
	}

	if p.TopP != 0 {
		v := p.TopP
		out.GenerationConfig.TopP = &v
	}

	if p.TopK != 0 {
		v := p.TopK
		out.GenerationConfig.TopK = &v
	}

	if p.SystemInstruction != "" {
		out.SystemInstruction = &apiContent{
			Parts: []apiPart{{Text: p.SystemInstruction}},
		}
	}

	return out
}
