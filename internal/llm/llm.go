// Package llm is the single capability the rest of the service needs from a
// language model: free text for a prompt, or a JSON object for a prompt and a
// schema. Providers live behind Generator so callers never import an SDK.
package llm

import (
	"context"
	"errors"
	"strings"

	"prepwise/internal/metrics"
)

var (
	ErrEmptyResponse   = errors.New("model returned no content")
	ErrMalformedObject = errors.New("model output does not match the requested schema")
)

type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateObject decodes the model's structured output into out.
	GenerateObject(ctx context.Context, req ObjectRequest, out any) error
}

type ObjectRequest struct {
	Name   string // schema name, some providers require one
	System string
	Prompt string
	Schema *Schema
}

type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Schema is the provider-neutral subset of JSON Schema used for structured
// generation. It marshals to plain JSON Schema.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// CleanOutput trims whitespace and strips a surrounding markdown code fence.
func CleanOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// Instrumented counts calls and failures of the wrapped generator.
type Instrumented struct {
	Generator
}

func (i Instrumented) GenerateText(ctx context.Context, prompt string) (string, error) {
	metrics.IncLLMCall()
	text, err := i.Generator.GenerateText(ctx, prompt)
	if err != nil {
		metrics.IncLLMError()
	}
	return text, err
}

func (i Instrumented) GenerateObject(ctx context.Context, req ObjectRequest, out any) error {
	metrics.IncLLMCall()
	err := i.Generator.GenerateObject(ctx, req, out)
	if err != nil {
		metrics.IncLLMError()
	}
	return err
}
