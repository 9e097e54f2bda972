package metrics

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// counters tracks process-wide operational counts.
var counters struct {
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	InterviewsCreated  atomic.Int64
	ParseFailures      atomic.Int64
	FeedbackCreated    atomic.Int64
	FeedbackFailures   atomic.Int64
	CallsStarted       atomic.Int64
	CallsFinished      atomic.Int64
	CallErrors         atomic.Int64
	RateLimited        atomic.Int64
	ResumesExtracted   atomic.Int64
	EventPublishErrors atomic.Int64
}

var order = []string{
	"llm_calls", "llm_errors",
	"interviews_created", "parse_failures",
	"feedback_created", "feedback_failures",
	"calls_started", "calls_finished", "call_errors",
	"rate_limited", "resumes_extracted", "event_publish_errors",
}

// Snapshot returns the current value of every counter.
func Snapshot() map[string]int64 {
	return map[string]int64{
		"llm_calls":            counters.LLMCalls.Load(),
		"llm_errors":           counters.LLMErrors.Load(),
		"interviews_created":   counters.InterviewsCreated.Load(),
		"parse_failures":       counters.ParseFailures.Load(),
		"feedback_created":     counters.FeedbackCreated.Load(),
		"feedback_failures":    counters.FeedbackFailures.Load(),
		"calls_started":        counters.CallsStarted.Load(),
		"calls_finished":       counters.CallsFinished.Load(),
		"call_errors":          counters.CallErrors.Load(),
		"rate_limited":         counters.RateLimited.Load(),
		"resumes_extracted":    counters.ResumesExtracted.Load(),
		"event_publish_errors": counters.EventPublishErrors.Load(),
	}
}

// Format renders the counters one per line for the /metrics endpoint.
func Format() string {
	m := Snapshot()
	var sb strings.Builder
	for _, k := range order {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

func IncLLMCall() { counters.LLMCalls.Add(1) }
func IncLLMError() { counters.LLMErrors.Add(1) }
func IncInterviewCreated() { counters.InterviewsCreated.Add(1) }
func IncParseFailure() { counters.ParseFailures.Add(1) }
func IncFeedbackCreated() { counters.FeedbackCreated.Add(1) }
func IncFeedbackFailure() { counters.FeedbackFailures.Add(1) }
func IncCallStarted() { counters.CallsStarted.Add(1) }
func IncCallFinished() { counters.CallsFinished.Add(1) }
func IncCallError() { counters.CallErrors.Add(1) }
func IncRateLimited() { counters.RateLimited.Add(1) }
func IncResumeExtracted() { counters.ResumesExtracted.Add(1) }
func IncEventPublishError() { counters.EventPublishErrors.Add(1) }
