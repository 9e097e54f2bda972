package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI implements Generator on the chat completions API, or on any
// compatible endpoint when baseURL is set.
type OpenAI struct {
	client    *openai.Client
	modelName string
}

func NewOpenAI(apiKey, modelName, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), modelName: modelName}
}

func (o *OpenAI) GenerateText(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, openai.ChatCompletionRequest{
		Model: o.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
}

func (o *OpenAI) GenerateObject(ctx context.Context, req ObjectRequest, out any) error {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	format := &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	if req.Schema != nil {
		name := req.Name
		if name == "" {
			name = "result"
		}
		format = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: schemaMarshaler{req.Schema},
			},
		}
	}

	text, err := o.complete(ctx, openai.ChatCompletionRequest{
		Model:          o.modelName,
		Messages:       messages,
		ResponseFormat: format,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(CleanOutput(text)), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedObject, err)
	}
	return nil
}

func (o *OpenAI) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

type schemaMarshaler struct {
	schema *Schema
}

func (s schemaMarshaler) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.schema)
}
