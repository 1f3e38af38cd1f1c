package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rafael-ulguim1/askgemini/pkg/config"
	"github.com/rafael-ulguim1/askgemini/pkg/credential"
	"github.com/rafael-ulguim1/askgemini/pkg/generation"
	"github.com/stretchr/testify/assert"
)

func TestErrorHint_MissingCredential(t *testing.T) {
	hint := errorHint(&credential.MissingError{})
	assert.Contains(t, hint, credential.EnvKey)
}

func TestErrorHint_EmptyPrompt(t *testing.T) {
	hint := errorHint(fmt.Errorf("request: %w", generation.ErrEmptyPrompt))
	assert.Contains(t, hint, "prompt")
}

func TestErrorHint_Transient(t *testing.T) {
	hint := errorHint(&generation.TransientError{Cause: errors.New("status 503")})
	assert.Contains(t, hint, "try again")
}

func TestErrorHint_RejectionByStatus(t *testing.T) {
	hint := errorHint(&generation.RejectionError{StatusCode: 401})
	assert.Contains(t, hint, "API key")

	hint = errorHint(&generation.RejectionError{StatusCode: 400})
	assert.Contains(t, hint, "rejected")
}

func TestErrorHint_UnknownResponse(t *testing.T) {
	hint := errorHint(&generation.ResponseError{Reason: "decode response"})
	assert.Contains(t, hint, "API shape")
}

func TestErrorHint_UnclassifiedHasNoHint(t *testing.T) {
	assert.Empty(t, errorHint(errors.New("some other failure")))
}

func TestPrintError_IncludesMessageAndHint(t *testing.T) {
	var sb strings.Builder
	printError(&sb, &credential.MissingError{})

	out := sb.String()
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "no API key found")
	assert.Contains(t, out, credential.EnvKey)
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()

	applyOverrides(&cfg, runOpts{
		model:       "gemini-1.5-pro",
		system:      "Be brief.",
		temperature: 0.2,
		maxTokens:   128,
	})

	assert.Equal(t, "gemini-1.5-pro", cfg.Model)
	assert.Equal(t, "Be brief.", cfg.SystemInstruction)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.Equal(t, 128, cfg.MaxOutputTokens)
}

func TestApplyOverrides_UnsetFlagsKeepConfig(t *testing.T) {
	cfg := config.Default()
	orig := cfg

	applyOverrides(&cfg, runOpts{temperature: -1})

	assert.Equal(t, orig, cfg)
}
