package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rstrong30/moltbook-agent/internal/core/domain"
)

// Long enough, more than eight plain words, no links.
const thoughtfulComment = "The reasoning holds together nicely although several assumptions deserve a much closer look before anyone generalizes from one experiment"

func TestIsHighQualityComment(t *testing.T) {
	require.True(t, IsHighQualityComment(thoughtfulComment, 80))
}

func TestShortCommentIsLowQuality(t *testing.T) {
	require.False(t, IsHighQualityComment("ok", 80))
}

func TestLengthIsMonotonic(t *testing.T) {
	// Shortening trimmed content below the threshold always flips the result.
	require.True(t, IsHighQualityComment(thoughtfulComment, len(thoughtfulComment)))
	require.False(t, IsHighQualityComment(thoughtfulComment[:len(thoughtfulComment)-1], len(thoughtfulComment)))
}

func TestTooFewWordsIsLowQuality(t *testing.T) {
	// Length passes but only seven alphanumeric words.
	content := "wonderful magnificent extraordinary incomprehensible unquestionably overwhelming tremendous"
	require.GreaterOrEqual(t, len(content), 80)
	require.False(t, IsHighQualityComment(content, 80))
}

func TestTwoLinksIsLowQuality(t *testing.T) {
	content := thoughtfulComment + " https://a.example https://b.example"
	require.False(t, IsHighQualityComment(content, 80))
	require.True(t, IsHighQualityComment(thoughtfulComment+" https://a.example", 80))
}

func TestIsHighQualityPost(t *testing.T) {
	require.True(t, IsHighQualityPost("A question about memory", thoughtfulComment, 80))
	require.False(t, IsHighQualityPost("Hi", "short", 80))
	// No word-count requirement for posts.
	require.True(t, IsHighQualityPost("", strings.Repeat("abc! ", 30), 80))
	require.False(t, IsHighQualityPost("two links", strings.Repeat("x", 100)+" https://a.example https://b.example", 80))
}

func TestIsPromotionalComment(t *testing.T) {
	require.False(t, IsPromotionalComment(""))
	require.False(t, IsPromotionalComment("   "))
	require.False(t, IsPromotionalComment(thoughtfulComment))
	require.True(t, IsPromotionalComment("Click here for more"))
	require.True(t, IsPromotionalComment("SUBSCRIBE to my newsletter"))
	require.True(t, IsPromotionalComment("details at https://example.com"))
	require.True(t, IsPromotionalComment("try curl against our endpoint"))
}

func TestIsPromotionalPost(t *testing.T) {
	require.False(t, IsPromotionalPost("", ""))
	require.False(t, IsPromotionalPost("A question", thoughtfulComment))
	require.True(t, IsPromotionalPost("Check this out", "join our discord for more https://x.com"))
	require.True(t, IsPromotionalPost("Big giveaway tomorrow", "details inside"))
	require.True(t, IsPromotionalPost("", "our token mint opens soon"))
}

func TestMarkerSetsDiffer(t *testing.T) {
	// "click" only flags comments; "giveaway" only flags posts.
	require.True(t, IsPromotionalComment("click the banner"))
	require.False(t, IsPromotionalPost("click the banner", "worth a look"))
	require.True(t, IsPromotionalPost("giveaway time", ""))
	require.False(t, IsPromotionalComment("giveaway time"))
}

func TestFindDuplicatePostByText(t *testing.T) {
	today := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	recent := []domain.Post{
		{ID: "p1", Title: "other title", Content: "today's prompt text", CreatedAt: today.AddDate(0, 0, -2)},
	}
	dup, reason := FindDuplicatePost(recent, "today's prompt text", today)
	require.True(t, dup)
	require.Equal(t, "question already posted recently", reason)
}

func TestFindDuplicatePostByDate(t *testing.T) {
	today := time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC)
	recent := []domain.Post{
		{ID: "p1", Title: "unrelated", Content: "unrelated", CreatedAt: time.Date(2024, 1, 3, 7, 0, 0, 0, time.UTC)},
	}
	dup, reason := FindDuplicatePost(recent, "new question", today)
	require.True(t, dup)
	require.Equal(t, "a post was already published today", reason)
}

func TestFindDuplicatePostNoMatch(t *testing.T) {
	today := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	recent := []domain.Post{
		{ID: "p1", Title: "old", Content: "old", CreatedAt: today.AddDate(0, 0, -1)},
		{ID: "p2", Title: "older", Content: "older"}, // unparsed date, skipped
	}
	dup, reason := FindDuplicatePost(recent, "new question", today)
	require.False(t, dup)
	require.Empty(t, reason)
}
