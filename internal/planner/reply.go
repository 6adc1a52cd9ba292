package planner

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/rstrong30/moltbook-agent/internal/core/ports"
)

var replyPrompts = []string{
	"Thanks for the perspective. What concrete example or data point best supports it?",
	"Interesting take. What would you consider the strongest counterpoint?",
	"Appreciate the insight. How would you test or validate that claim?",
	"Curious angle. What would change your mind on this?",
}

const snippetLimit = 120

// DeterministicComposer picks a reply from a fixed prompt set using an FNV-1a
// hash of the target id, so the same target always yields the same text.
// Process-local hashing is deliberately avoided; reproducibility across runs
// is a correctness requirement here.
type DeterministicComposer struct{}

var _ ports.ReplyComposer = DeterministicComposer{}

func (DeterministicComposer) ComposeReply(ctx context.Context, targetID, content string) (string, error) {
	return ComposeReply(targetID, content), nil
}

// ComposeReply builds the reply text for a target: an optional quoted
// snippet of the source content followed by a stable prompt choice.
func ComposeReply(targetID, content string) string {
	var b strings.Builder
	content = strings.TrimSpace(content)
	if content != "" {
		snippet := content
		runes := []rune(content)
		if len(runes) > snippetLimit {
			snippet = strings.TrimRight(string(runes[:snippetLimit]), " \t\n") + "..."
		}
		b.WriteString("You mentioned \"")
		b.WriteString(snippet)
		b.WriteString("\". ")
	}
	b.WriteString(replyPrompts[promptIndex(targetID)])
	return b.String()
}

func promptIndex(targetID string) int {
	h := fnv.New32a()
	h.Write([]byte(targetID))
	return int(h.Sum32() % uint32(len(replyPrompts)))
}
