// Package questions turns free-form model output into an interview question
// list and builds the prompts that ask for one.
package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"prepwise/internal/llm"
)

// ErrNoQuestions is matched by every *ParseError.
var ErrNoQuestions = errors.New("no usable questions in model output")

type Reason string

const (
	ReasonEmptyResponse Reason = "empty response"
	ReasonNoQuestions   Reason = "no questions recovered"
)

type ParseError struct {
	Reason Reason
	Raw    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse generated questions: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrNoQuestions }

// minLineLength is the shortest line the line fallback accepts as a question.
const minLineLength = 10

var (
	ordinalPrefix = regexp.MustCompile(`^(?:\d+\s*[.)]|[-•])\s*`)
	quoteBoundary = regexp.MustCompile(`"\s*,\s*"`)
)

// ParseQuestions recovers a question list from raw model output. Each stage
// runs only when the previous one produced nothing:
//
//  1. the fence-stripped text as JSON, either an array or {"questions": [...]}
//  2. the span from the first '[' to the last ']' as JSON
//  3. that span's contents split on `","`, only when they are quoted items
//  4. when there are no brackets, every line longer than ten characters
//
// The result is cut to amount when amount is positive.
func ParseQuestions(raw string, amount int) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Reason: ReasonEmptyResponse, Raw: raw}
	}

	cleaned := llm.CleanOutput(raw)
	qs := decodeJSON(cleaned)

	if len(qs) == 0 {
		start := strings.Index(cleaned, "[")
		end := strings.LastIndex(cleaned, "]")
		if start >= 0 && end > start {
			qs = decodeJSON(cleaned[start : end+1])
			if len(qs) == 0 {
				qs = splitQuoted(cleaned[start+1 : end])
			}
		} else {
			qs = fromLines(cleaned)
		}
	}

	if len(qs) == 0 {
		return nil, &ParseError{Reason: ReasonNoQuestions, Raw: raw}
	}
	if amount > 0 && len(qs) > amount {
		qs = qs[:amount]
	}
	return qs, nil
}

func decodeJSON(text string) []string {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case []any:
		return collectStrings(t)
	case map[string]any:
		if arr, ok := t["questions"].([]any); ok {
			return collectStrings(arr)
		}
	}
	return nil
}

func collectStrings(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		switch v := item.(type) {
		case string:
			s = v
		case map[string]any:
			// [{"question": "..."}] is a common variation on the requested shape.
			s, _ = v["question"].(string)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func splitQuoted(inner string) []string {
	inner = strings.TrimSpace(inner)
	if len(inner) < 2 || !strings.HasPrefix(inner, `"`) || !strings.HasSuffix(inner, `"`) {
		return nil
	}
	var out []string
	for _, piece := range quoteBoundary.Split(inner, -1) {
		s := strings.TrimSpace(piece)
		s = strings.Trim(s, `",`)
		s = strings.TrimSpace(s)
		s = strings.ReplaceAll(s, `\"`, `"`)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func fromLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minLineLength || isMarker(line) {
			continue
		}
		line = ordinalPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(strings.Trim(line, `",`))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func isMarker(line string) bool {
	return strings.HasPrefix(line, "```") ||
		strings.HasPrefix(line, "{") ||
		strings.HasPrefix(line, "}")
}
