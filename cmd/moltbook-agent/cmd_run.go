package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rstrong30/moltbook-agent/internal/brain"
	"github.com/rstrong30/moltbook-agent/internal/config"
	"github.com/rstrong30/moltbook-agent/internal/core/domain"
	"github.com/rstrong30/moltbook-agent/internal/core/ports"
	"github.com/rstrong30/moltbook-agent/internal/logging"
	"github.com/rstrong30/moltbook-agent/internal/planner"
	"github.com/rstrong30/moltbook-agent/internal/questions"
	"github.com/rstrong30/moltbook-agent/internal/sites/moltbook"
	"github.com/rstrong30/moltbook-agent/internal/storage"
	"github.com/rstrong30/moltbook-agent/internal/ui/telegram"
)

type runFlags struct {
	configPath       string
	name             string
	submolt          string
	scan             []string
	questionsPath    string
	statePath        string
	startDate        string
	minCommentLength int
	maxReplies       int
	post             bool
	confirm          bool
	llmReplies       bool
	verbose          bool
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one full agent run",
		Long: `Execute one run: select today's question, publish it (only with both
--post and --confirm), reply to qualifying comments on recent own posts, and
spend any remaining reply budget commenting in the scan submolts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(cmd.Context(), cmd, &f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML config file")
	fl.StringVar(&f.name, "name", "", "agent name")
	fl.StringVar(&f.submolt, "submolt", "", "explicit target submolt (bypasses the rotation)")
	fl.StringSliceVar(&f.scan, "scan", nil, "submolts to scan for comment targets")
	fl.StringVar(&f.questionsPath, "questions", "", "question bank file")
	fl.StringVar(&f.statePath, "state", "", "state file path")
	fl.StringVar(&f.startDate, "start-date", "", "queue start date (YYYY-MM-DD)")
	fl.IntVar(&f.minCommentLength, "min-comment-length", config.DefaultMinCommentLength, "minimum comment length to reply to")
	fl.IntVar(&f.maxReplies, "max-replies", config.DefaultMaxReplies, "maximum replies per run")
	fl.BoolVar(&f.post, "post", false, "enable posting and replies (opt-in)")
	fl.BoolVar(&f.confirm, "confirm", false, "required with --post to confirm you want to publish")
	fl.BoolVar(&f.llmReplies, "llm-replies", false, "compose replies with Gemini instead of the fixed prompt set")
	fl.BoolVar(&f.verbose, "verbose", false, "debug logging")
	return cmd
}

func runAgent(ctx context.Context, cmd *cobra.Command, f *runFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyRunFlags(cmd, f, &cfg)

	log := logging.New(f.verbose)
	defer log.Sync()

	apiKey := os.Getenv("MOLTBOOK_API_KEY")
	if f.post && apiKey == "" {
		return domain.ErrMissingCredential
	}

	bank, err := questions.Load(cfg.QuestionsPath)
	if err != nil {
		return err
	}
	if problems := questions.Validate(bank); len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}

	startDate, err := parseStartDate(cfg.StartDate)
	if err != nil {
		return err
	}

	store, closeStore, err := selectStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client := moltbook.NewClient(apiKey)
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}

	var composer ports.ReplyComposer = planner.DeterministicComposer{}
	if f.llmReplies {
		gemini, err := brain.NewGemini(ctx, os.Getenv("GEMINI_API_KEY"))
		if err != nil {
			return err
		}
		composer = gemini
	}

	pl := planner.New(planner.Config{
		AgentName:        cfg.Name,
		Submolt:          cfg.Submolt,
		Rotation:         cfg.Rotation,
		ScanSubmolts:     cfg.ScanSubmolts,
		StartDate:        startDate,
		MinCommentLength: cfg.MinCommentLength,
		MaxReplies:       cfg.MaxReplies,
		Publish:          f.post,
		Confirmed:        f.confirm,
	}, bank, client, store, composer, log)

	report, err := pl.Run(ctx, time.Now())
	if report != nil {
		printReport(report, len(bank), f.post)
		notifyOwner(ctx, log, report)
	}
	return err
}

// applyRunFlags lets explicitly set flags win over file and env values.
func applyRunFlags(cmd *cobra.Command, f *runFlags, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("name") {
		cfg.Name = f.name
	}
	if set("submolt") {
		cfg.Submolt = f.submolt
	}
	if set("scan") {
		cfg.ScanSubmolts = f.scan
	}
	if set("questions") {
		cfg.QuestionsPath = f.questionsPath
	}
	if set("state") {
		cfg.StatePath = f.statePath
	}
	if set("start-date") {
		cfg.StartDate = f.startDate
	}
	if set("min-comment-length") {
		cfg.MinCommentLength = f.minCommentLength
	}
	if set("max-replies") {
		cfg.MaxReplies = f.maxReplies
	}
}

func parseStartDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &domain.ConfigurationError{Reason: fmt.Sprintf("invalid start date %q: expected YYYY-MM-DD", value)}
	}
	return t, nil
}

// selectStore prefers Postgres when DATABASE_URL is set, matching the
// deployment where the working directory is not durable.
func selectStore(ctx context.Context, cfg config.Config) (ports.StateStore, func(), error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pg, err := storage.NewPostgresStore(ctx, dbURL, cfg.Name)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}
	return storage.NewJSONStore(cfg.StatePath), func() {}, nil
}

func printReport(report *domain.RunReport, bankLen int, posting bool) {
	fmt.Printf("Selected question #%d of %d:\n", report.QuestionIndex, bankLen)
	fmt.Println(report.Question)
	switch {
	case report.Posted:
		fmt.Printf("Posted question to %s. id=%s\n", report.Submolt, report.PostID)
	case report.PostSkipped == "dry run":
		fmt.Println("Dry run only. No API calls were made.")
	case report.PostSkipped != "":
		fmt.Printf("Skipping new post: %s.\n", report.PostSkipped)
	}
	if posting {
		fmt.Printf("Replies sent: %d\n", report.RepliesSent+report.CommentsSent)
	}
}

func notifyOwner(ctx context.Context, log *zap.Logger, report *domain.RunReport) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatID == "" {
		return
	}
	notifier, err := telegram.NewNotifier(token, chatID)
	if err != nil {
		log.Warn("telegram notifier unavailable", zap.Error(err))
		return
	}
	body := fmt.Sprintf("Question #%d: %s\nPosted: %v\nReplies: %d\nComments: %d",
		report.QuestionIndex, report.Question, report.Posted,
		report.RepliesSent, report.CommentsSent)
	if err := notifier.Notify(ctx, "moltbook-agent run", body); err != nil {
		log.Warn("telegram notification failed", zap.Error(err))
	}
}
