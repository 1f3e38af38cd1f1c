// Package generation defines the normalized request/result model for a
// single text generation call, independent of any provider wire format.
// It also provides Retrier, a Generator wrapper that retries transient
// failures with exponential backoff.
package generation

import (
	"context"
	"strings"
)

// Stock generation parameters. These match the defaults the Gemini docs
// recommend for general-purpose text generation.
const (
	DefaultModel           = "gemini-1.5-flash"
	DefaultTemperature     = 0.9
	DefaultMaxOutputTokens = 8192
	DefaultTopP            = 1.0
	DefaultTopK            = 32
)

// Params holds the tunable options for a generation call. Zero values
// mean "omit from the request and let the provider decide".
type Params struct {
	Model             string  // Model identifier (e.g. "gemini-1.5-flash").
	Temperature       float64 // Sampling temperature in [0,1].
	MaxOutputTokens   int     // Upper bound on response length.
	TopP              float64 // Nucleus sampling threshold.
	TopK              int     // Top-k sampling cutoff.
	SystemInstruction string  // Optional behaviour-steering instruction.
}

// DefaultParams returns Params populated with the stock values.
func DefaultParams() Params {
	return Params{
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
		MaxOutputTokens: DefaultMaxOutputTokens,
		TopP:            DefaultTopP,
		TopK:            DefaultTopK,
	}
}

// Request is one prompt-plus-parameters unit of work. Build it once per
// invocation; it is not mutated after construction.
type Request struct {
	Prompt string
	Params Params
}

// Validate reports whether the request can be sent. An empty or
// whitespace-only prompt fails with ErrEmptyPrompt so no network call is
// wasted on it.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}

	return nil
}

// Usage carries the token counts reported by the provider for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Result is the normalized outcome of a successful generation call. The
// text is returned verbatim as the provider produced it.
type Result struct {
	Text         string
	FinishReason string
	Usage        Usage
}

// Generator sends one generation request and returns the reply. Errors
// leaving a Generator are always one of the classified kinds in this
// package (or credential errors surfaced before the Generator is built),
// never raw transport errors.
type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
}
