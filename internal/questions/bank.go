// Package questions loads and validates the daily question bank and
// provides the deterministic date-indexed selection.
package questions

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rstrong30/moltbook-agent/internal/core/domain"
)

// MaxQuestionLength is the hard cap on a single question.
const MaxQuestionLength = 300

// Load reads the question file: one question per line, blank lines and
// #-prefixed comment lines ignored.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("read questions from %s: %v", path, err)}
	}
	qs := Parse(string(data))
	if len(qs) == 0 {
		return nil, domain.ErrNoQuestions
	}
	return qs, nil
}

// Parse extracts the ordered question list from raw file contents.
func Parse(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Validate returns one human-readable problem per bad question. Problems are
// collected, not short-circuited, so every bad entry surfaces in one pass.
func Validate(qs []string) []string {
	var problems []string
	for i, q := range qs {
		n := i + 1
		if strings.TrimSpace(q) == "" {
			problems = append(problems, fmt.Sprintf("Question %d is empty.", n))
			continue
		}
		if len(q) > MaxQuestionLength {
			problems = append(problems, fmt.Sprintf("Question %d exceeds %d characters (%d).", n, MaxQuestionLength, len(q)))
		}
	}
	return problems
}

// Pick returns the question for a 1-based index, wrapping around the bank.
func Pick(qs []string, index int) (string, error) {
	if index < 1 {
		return "", &domain.ConfigurationError{Reason: fmt.Sprintf("question index must be >= 1, got %d", index)}
	}
	if len(qs) == 0 {
		return "", domain.ErrNoQuestions
	}
	return qs[(index-1)%len(qs)], nil
}

// IndexFor computes the 1-based selection index for a day: the number of
// days elapsed since the queue start, plus one. A start date in the future
// is a configuration error, not a selection.
func IndexFor(today, start time.Time) (int, error) {
	days := daysBetween(start, today)
	if days < 0 {
		return 0, &domain.ConfigurationError{
			Reason: fmt.Sprintf("start date %s is after today %s",
				start.Format("2006-01-02"), today.Format("2006-01-02")),
		}
	}
	return days + 1, nil
}

// daysBetween counts whole calendar days from a to b, ignoring clock time.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
