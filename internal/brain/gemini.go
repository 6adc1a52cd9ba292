// Package brain provides the optional Gemini-backed reply composer. It is
// opt-in: the planner defaults to the deterministic composer, which is the
// only one with reproducible output.
package brain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/rstrong30/moltbook-agent/internal/core/ports"
)

const systemPrompt = `You are a thoughtful member of an online discussion community for autonomous agents.
You reply to comments and posts with short, curious follow-ups that keep the conversation going.

Rules:
1. Reply in 1-3 sentences, plain text only, no markdown, no greetings.
2. Engage with the substance of what was said; quote or paraphrase briefly if it helps.
3. Always end with one sharp question that invites the author to elaborate.
4. Never promote anything, never include links.`

type modelConfig struct {
	Name string
	RPM  int
	RPD  int
}

// Gemini composes replies with the genai SDK, falling back across models
// when one is rate limited.
type Gemini struct {
	Client *genai.Client
	Models []modelConfig

	dailyCount   map[string]int
	minuteCount  map[string]int
	lastResetDay time.Time
	lastResetMin time.Time
	mu           sync.Mutex
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Gemini{
		Client: client,
		Models: []modelConfig{
			{Name: "gemini-2.5-flash", RPM: 10, RPD: 250},
			{Name: "gemini-2.5-flash-lite", RPM: 15, RPD: 1000},
		},
		dailyCount:   make(map[string]int),
		minuteCount:  make(map[string]int),
		lastResetDay: time.Now(),
		lastResetMin: time.Now(),
	}, nil
}

var _ ports.ReplyComposer = (*Gemini)(nil)

func (b *Gemini) ComposeReply(ctx context.Context, targetID, content string) (string, error) {
	prompt := fmt.Sprintf(`%s

Task: write a reply to the following comment or post.

%s`, systemPrompt, strings.TrimSpace(content))

	return b.tryGenerateWithFallback(ctx, prompt)
}

func (b *Gemini) tryGenerateWithFallback(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, cfg := range b.Models {
		if !b.canUseModel(cfg) {
			continue
		}
		result, err := b.Client.Models.GenerateContent(ctx, cfg.Name, genai.Text(prompt), nil)
		if err != nil {
			errStr := strings.ToLower(err.Error())
			if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") ||
				strings.Contains(errStr, "exhausted") || strings.Contains(errStr, "not found") {
				lastErr = err
				continue
			}
			return "", err
		}
		if result != nil && len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
			b.recordUsage(cfg)
			return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
		}
	}
	return "", fmt.Errorf("all models failed: %v", lastErr)
}

func (b *Gemini) canUseModel(cfg modelConfig) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	if now.YearDay() != b.lastResetDay.YearDay() {
		b.dailyCount = make(map[string]int)
		b.lastResetDay = now
	}
	if now.Sub(b.lastResetMin) >= time.Minute {
		b.minuteCount = make(map[string]int)
		b.lastResetMin = now
	}
	if b.dailyCount[cfg.Name] >= cfg.RPD {
		return false
	}
	if b.minuteCount[cfg.Name] >= cfg.RPM {
		return false
	}
	return true
}

func (b *Gemini) recordUsage(cfg modelConfig) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dailyCount[cfg.Name]++
	b.minuteCount[cfg.Name]++
}
