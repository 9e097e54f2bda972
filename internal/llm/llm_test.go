package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepwise/internal/metrics"
)

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `["a"]`, `["a"]`},
		{"json fence", "```json\n[\"a\"]\n```", `["a"]`},
		{"upper fence", "```JSON\n{}\n```", `{}`},
		{"bare fence", "```\n[1]\n```", `[1]`},
		{"whitespace", "  \n[\"a\"]\n  ", `["a"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanOutput(tt.raw))
		})
	}
}

func TestToGenaiSchema(t *testing.T) {
	s := &Schema{
		Type:     TypeObject,
		Required: []string{"score", "tags"},
		Properties: map[string]*Schema{
			"score": {Type: TypeNumber},
			"tags":  {Type: TypeArray, Items: &Schema{Type: TypeString, Enum: []string{"a", "b"}}},
		},
	}

	got := toGenaiSchema(s)
	require.NotNil(t, got)
	assert.Equal(t, genai.TypeObject, got.Type)
	assert.Equal(t, []string{"score", "tags"}, got.Required)
	assert.Equal(t, genai.TypeNumber, got.Properties["score"].Type)
	assert.Equal(t, genai.TypeArray, got.Properties["tags"].Type)
	assert.Equal(t, []string{"a", "b"}, got.Properties["tags"].Items.Enum)
	assert.Nil(t, toGenaiSchema(nil))
}

func TestSchemaMarshalsAsJSONSchema(t *testing.T) {
	b, err := schemaMarshaler{&Schema{
		Type:       TypeObject,
		Properties: map[string]*Schema{"name": {Type: TypeString}},
		Required:   []string{"name"},
	}}.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`, string(b))
}

type stubGenerator struct{ err error }

func (s stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "ok", s.err
}

func (s stubGenerator) GenerateObject(ctx context.Context, req ObjectRequest, out any) error {
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(`{"v":1}`), out)
}

func TestInstrumentedCountsCallsAndErrors(t *testing.T) {
	calls := metrics.Snapshot()["llm_calls"]
	errs := metrics.Snapshot()["llm_errors"]

	ok := Instrumented{stubGenerator{}}
	_, err := ok.GenerateText(context.Background(), "p")
	require.NoError(t, err)

	var out struct{ V int }
	require.NoError(t, ok.GenerateObject(context.Background(), ObjectRequest{}, &out))
	assert.Equal(t, 1, out.V)

	failing := Instrumented{stubGenerator{err: errors.New("boom")}}
	_, err = failing.GenerateText(context.Background(), "p")
	assert.Error(t, err)

	assert.Equal(t, calls+3, metrics.Snapshot()["llm_calls"])
	assert.Equal(t, errs+1, metrics.Snapshot()["llm_errors"])
}
