// Package planner orchestrates one agent run: deterministic question
// selection, the publish gates, the bounded reply sweep, and the final state
// persist. A run is strictly sequential; all mutable state is local to it.
package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rstrong30/moltbook-agent/internal/core/domain"
	"github.com/rstrong30/moltbook-agent/internal/core/ports"
	"github.com/rstrong30/moltbook-agent/internal/filter"
	"github.com/rstrong30/moltbook-agent/internal/questions"
	"github.com/rstrong30/moltbook-agent/internal/state"
)

const (
	defaultOwnPostWindow = 5
	defaultFeedLimit     = 10
)

// Config carries the per-run inputs.
type Config struct {
	AgentName        string
	Submolt          string   // explicit target; empty means use the rotation
	Rotation         []string // cycled one-per-publish when no explicit target
	ScanSubmolts     []string // feeds scanned for top-level comment targets
	StartDate        time.Time
	MinCommentLength int
	MaxReplies       int
	Publish          bool // --post
	Confirmed        bool // --confirm
	OwnPostWindow    int
	FeedLimit        int
}

type Planner struct {
	cfg      Config
	bank     []string
	platform ports.Platform
	store    ports.StateStore
	composer ports.ReplyComposer
	log      *zap.Logger
}

func New(cfg Config, bank []string, platform ports.Platform, store ports.StateStore, composer ports.ReplyComposer, log *zap.Logger) *Planner {
	if cfg.OwnPostWindow <= 0 {
		cfg.OwnPostWindow = defaultOwnPostWindow
	}
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = defaultFeedLimit
	}
	if cfg.MaxReplies < 0 {
		cfg.MaxReplies = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{cfg: cfg, bank: bank, platform: platform, store: store, composer: composer, log: log}
}

// Run executes one complete invocation for the given day. State is persisted
// on every exit path once selection has succeeded, including failures, so
// actions already submitted are never re-sent by a later run.
func (p *Planner) Run(ctx context.Context, today time.Time) (*domain.RunReport, error) {
	if len(p.bank) == 0 {
		return nil, domain.ErrNoQuestions
	}
	if problems := questions.Validate(p.bank); len(problems) > 0 {
		return nil, &domain.ValidationError{Problems: problems}
	}

	start := p.cfg.StartDate
	if start.IsZero() {
		start = today
	}
	index, err := questions.IndexFor(today, start)
	if err != nil {
		return nil, err
	}
	question, err := questions.Pick(p.bank, index)
	if err != nil {
		return nil, err
	}

	st, err := p.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.RunReport{Question: question, QuestionIndex: index}

	defer func() {
		st.LastRunAt = time.Now().UTC().Format(time.RFC3339)
		if saveErr := p.store.Save(ctx, st); saveErr != nil {
			p.log.Warn("state save failed; reply history from this run may be lost",
				zap.Error(saveErr))
		}
	}()

	submolt, usedRotation := p.targetSubmolt(st)
	report.Submolt = submolt

	if !p.cfg.Publish {
		report.PostSkipped = "dry run"
		return report, nil
	}
	if !p.cfg.Confirmed {
		return report, domain.ErrNotConfirmed
	}
	claimed, err := p.platform.Claimed(ctx)
	if err != nil {
		return report, err
	}
	if !claimed {
		return report, domain.ErrNotClaimed
	}

	profile, err := p.platform.Profile(ctx, p.cfg.AgentName)
	if err != nil {
		return report, err
	}

	todayISO := today.Format("2006-01-02")
	if st.LastPostDate == todayISO {
		report.PostSkipped = "post already sent today"
	} else if dup, reason := filter.FindDuplicatePost(profile.RecentPosts, question, today); dup {
		report.PostSkipped = reason
	} else {
		post, err := p.platform.CreatePost(ctx, submolt, question, question)
		if err != nil {
			return report, err
		}
		st.LastPostDate = todayISO
		st.LastPostID = post.ID
		if usedRotation && len(p.cfg.Rotation) > 0 {
			st.SubmoltRotationIndex = (st.SubmoltRotationIndex + 1) % len(p.cfg.Rotation)
		}
		report.Posted = true
		report.PostID = post.ID
		p.log.Info("question posted",
			zap.String("submolt", submolt), zap.String("post_id", post.ID))
	}

	sent := 0
	if err := p.replyToOwnPosts(ctx, st, profile.RecentPosts, report, &sent); err != nil {
		return report, err
	}
	if err := p.scanSubmolts(ctx, st, report, &sent); err != nil {
		return report, err
	}
	return report, nil
}

// replyToOwnPosts sweeps the most recent own posts and replies to qualifying
// comments until the budget is spent. Own-post replies always run before the
// cross-submolt scan.
func (p *Planner) replyToOwnPosts(ctx context.Context, st *state.RunState, posts []domain.Post, report *domain.RunReport, sent *int) error {
	if len(posts) > p.cfg.OwnPostWindow {
		posts = posts[:p.cfg.OwnPostWindow]
	}
	for _, post := range posts {
		if *sent >= p.cfg.MaxReplies {
			return nil
		}
		if post.ID == "" {
			continue
		}
		comments, err := p.platform.Comments(ctx, post.ID)
		if err != nil {
			return err
		}
		for _, cm := range comments {
			if *sent >= p.cfg.MaxReplies {
				return nil
			}
			if cm.ID == "" || st.HasReplied(cm.ID) {
				continue
			}
			if cm.Author == p.cfg.AgentName {
				continue
			}
			if filter.IsPromotionalComment(cm.Content) {
				continue
			}
			if !filter.IsHighQualityComment(cm.Content, p.cfg.MinCommentLength) {
				continue
			}
			text, err := p.composer.ComposeReply(ctx, cm.ID, cm.Content)
			if err != nil {
				p.log.Warn("reply composition failed",
					zap.String("comment_id", cm.ID), zap.Error(err))
				continue
			}
			if err := p.platform.CreateComment(ctx, post.ID, cm.ID, text); err != nil {
				return err
			}
			st.MarkReplied(cm.ID)
			*sent++
			report.RepliesSent++
			p.log.Info("replied to comment",
				zap.String("comment_id", cm.ID), zap.String("post_id", post.ID))
		}
	}
	return nil
}

// scanSubmolts spends any remaining budget on top-level comments in the
// configured scan feeds.
func (p *Planner) scanSubmolts(ctx context.Context, st *state.RunState, report *domain.RunReport, sent *int) error {
	for _, sub := range p.cfg.ScanSubmolts {
		if *sent >= p.cfg.MaxReplies {
			return nil
		}
		feed, err := p.platform.SubmoltFeed(ctx, sub, p.cfg.FeedLimit)
		if err != nil {
			return err
		}
		for _, post := range feed {
			if *sent >= p.cfg.MaxReplies {
				return nil
			}
			if post.ID == "" || st.HasCommented(post.ID) {
				continue
			}
			if post.Author == p.cfg.AgentName {
				continue
			}
			if filter.IsPromotionalPost(post.Title, post.Content) {
				continue
			}
			if !filter.IsHighQualityPost(post.Title, post.Content, p.cfg.MinCommentLength) {
				continue
			}
			text, err := p.composer.ComposeReply(ctx, post.ID, post.Content)
			if err != nil {
				p.log.Warn("comment composition failed",
					zap.String("post_id", post.ID), zap.Error(err))
				continue
			}
			if err := p.platform.CreateComment(ctx, post.ID, "", text); err != nil {
				return err
			}
			st.MarkCommented(post.ID)
			*sent++
			report.CommentsSent++
			p.log.Info("commented on post",
				zap.String("post_id", post.ID), zap.String("submolt", sub))
		}
	}
	return nil
}

func (p *Planner) targetSubmolt(st *state.RunState) (string, bool) {
	if p.cfg.Submolt != "" {
		return p.cfg.Submolt, false
	}
	if len(p.cfg.Rotation) == 0 {
		return "general", false
	}
	idx := st.SubmoltRotationIndex % len(p.cfg.Rotation)
	if idx < 0 {
		idx += len(p.cfg.Rotation)
	}
	return p.cfg.Rotation[idx], true
}
