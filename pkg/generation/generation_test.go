package generation_test

import (
	"testing"

	"github.com/rafael-ulguim1/askgemini/pkg/generation"
	"github.com/stretchr/testify/assert"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		wantErr error
	}{
		{name: "valid", prompt: "Explain recursion in one sentence."},
		{name: "leading and trailing whitespace", prompt: "  hi  "},
		{name: "empty", prompt: "", wantErr: generation.ErrEmptyPrompt},
		{name: "whitespace only", prompt: "   \t\n ", wantErr: generation.ErrEmptyPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := generation.Request{Prompt: tt.prompt}

			err := req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDefaultParams(t *testing.T) {
	p := generation.DefaultParams()

	assert.Equal(t, "gemini-1.5-flash", p.Model)
	assert.InDelta(t, 0.9, p.Temperature, 1e-9)
	assert.Equal(t, 8192, p.MaxOutputTokens)
	assert.InDelta(t, 1.0, p.TopP, 1e-9)
	assert.Equal(t, 32, p.TopK)
	assert.Empty(t, p.SystemInstruction)
}
