// Package filter holds the pure content-quality and spam predicates used as
// publish and reply gates. No I/O, no side effects.
package filter

import (
	"strings"
	"time"
	"unicode"

	"github.com/rstrong30/moltbook-agent/internal/core/domain"
)

// Comments and posts carry different spam signatures, so the two marker
// lists are deliberately separate data. Do not merge them.
var commentPromoMarkers = []string{
	"http://", "https://",
	"subscribe", "newsletter", "rss", "follow", "join", "invite",
	"discord", "telegram", "airdrop", "promo", "promotion", "sponsored",
	"api", "curl", "browse:", "click", "watch",
}

var postPromoMarkers = []string{
	"http://", "https://",
	"subscribe", "newsletter", "rss", "follow", "join", "invite",
	"discord", "telegram", "airdrop", "promo", "promotion", "sponsored",
	"giveaway", "mint", "sale",
}

const minWordCount = 8

// IsHighQualityComment reports whether a comment is substantial enough to
// reply to: long enough, at least 8 alphanumeric words, at most one link.
func IsHighQualityComment(content string, minLength int) bool {
	content = strings.TrimSpace(content)
	if len(content) < minLength {
		return false
	}
	if alnumWordCount(content) < minWordCount {
		return false
	}
	return linkCount(content) <= 1
}

// IsHighQualityPost applies the length and link rules to the combined title
// and content. Posts carry no word-count requirement.
func IsHighQualityPost(title, content string, minLength int) bool {
	combined := strings.TrimSpace(title + " " + content)
	if len(combined) < minLength {
		return false
	}
	return linkCount(combined) <= 1
}

// IsPromotionalComment reports whether a comment smells like spam or
// self-promotion. Empty content is not promotional.
func IsPromotionalComment(content string) bool {
	return containsMarker(strings.ToLower(content), commentPromoMarkers)
}

// IsPromotionalPost applies the post marker set to the combined lowercased
// title and content.
func IsPromotionalPost(title, content string) bool {
	return containsMarker(strings.ToLower(title+" "+content), postPromoMarkers)
}

// FindDuplicatePost reports whether publishing the question today would
// duplicate a recent post, either by exact text or because a post was
// already published on today's date.
func FindDuplicatePost(recent []domain.Post, question string, today time.Time) (bool, string) {
	day := today.Format("2006-01-02")
	for _, p := range recent {
		if p.Title == question || p.Content == question {
			return true, "question already posted recently"
		}
		if !p.CreatedAt.IsZero() && p.CreatedAt.Format("2006-01-02") == day {
			return true, "a post was already published today"
		}
	}
	return false, ""
}

func containsMarker(text string, markers []string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// alnumWordCount counts whitespace-delimited tokens made up entirely of
// letters and digits.
func alnumWordCount(content string) int {
	count := 0
	for _, word := range strings.Fields(content) {
		if isAlnum(word) {
			count++
		}
	}
	return count
}

func isAlnum(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func linkCount(content string) int {
	return strings.Count(content, "http://") + strings.Count(content, "https://")
}
