// Package llmtest provides a scripted llm.Generator for tests.
package llmtest

import (
	"context"
	"encoding/json"
	"sync"

	"prepwise/internal/llm"
)

// Fake returns canned output and records every prompt it receives.
type Fake struct {
	Text    string
	TextErr error

	// Object is marshalled to JSON and decoded into the caller's out value.
	Object    any
	ObjectErr error

	mu       sync.Mutex
	Prompts  []string
	Requests []llm.ObjectRequest
}

func (f *Fake) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.Prompts = append(f.Prompts, prompt)
	f.mu.Unlock()
	if f.TextErr != nil {
		return "", f.TextErr
	}
	return f.Text, nil
}

func (f *Fake) GenerateObject(ctx context.Context, req llm.ObjectRequest, out any) error {
	f.mu.Lock()
	f.Requests = append(f.Requests, req)
	f.mu.Unlock()
	if f.ObjectErr != nil {
		return f.ObjectErr
	}
	b, err := json.Marshal(f.Object)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// Calls reports how many requests of either kind were made.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Prompts) + len(f.Requests)
}
