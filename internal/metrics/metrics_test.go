package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountersAppearInFormat(t *testing.T) {
	before := Snapshot()["interviews_created"]
	IncInterviewCreated()
	IncInterviewCreated()

	assert.Equal(t, before+2, Snapshot()["interviews_created"])

	out := Format()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(order))
	assert.True(t, strings.HasPrefix(lines[0], "llm_calls "))
	assert.Contains(t, out, "interviews_created ")
}
