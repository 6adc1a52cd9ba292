package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rstrong30/moltbook-agent/internal/config"
	"github.com/rstrong30/moltbook-agent/internal/core/domain"
	"github.com/rstrong30/moltbook-agent/internal/questions"
	"github.com/rstrong30/moltbook-agent/internal/sites/moltbook"
)

type pickFlags struct {
	configPath string
	index      int
	date       string
	startDate  string
	submolt    string
	preview    bool
}

func newPickCmd() *cobra.Command {
	var f pickFlags
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Preview the question selected for a date (no API calls)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, &f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML config file")
	fl.IntVar(&f.index, "index", 0, "1-based question index (overrides date-based selection)")
	fl.StringVar(&f.date, "date", "", "date to select for (YYYY-MM-DD, default today)")
	fl.StringVar(&f.startDate, "start-date", "", "queue start date (YYYY-MM-DD)")
	fl.StringVar(&f.submolt, "submolt", "general", "target submolt for the preview payload")
	fl.BoolVar(&f.preview, "preview", false, "print the JSON payload that run would submit")
	return cmd
}

func runPick(cmd *cobra.Command, f *pickFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	bank, err := questions.Load(cfg.QuestionsPath)
	if err != nil {
		return err
	}
	if problems := questions.Validate(bank); len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}

	index := f.index
	if !cmd.Flags().Changed("index") {
		today := time.Now()
		if f.date != "" {
			if today, err = time.Parse("2006-01-02", f.date); err != nil {
				return &domain.ConfigurationError{Reason: fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", f.date)}
			}
		}
		startValue := f.startDate
		if startValue == "" {
			startValue = cfg.StartDate
		}
		start := today
		if startValue != "" {
			if start, err = time.Parse("2006-01-02", startValue); err != nil {
				return &domain.ConfigurationError{Reason: fmt.Sprintf("invalid start date %q: expected YYYY-MM-DD", startValue)}
			}
		}
		if index, err = questions.IndexFor(today, start); err != nil {
			return err
		}
	}

	selected, err := questions.Pick(bank, index)
	if err != nil {
		return err
	}
	fmt.Printf("Selected question #%d of %d:\n", index, len(bank))
	fmt.Println(selected)

	if f.preview {
		payload, err := json.MarshalIndent(map[string]string{
			"submolt": f.submolt,
			"title":   selected,
			"content": selected,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println("Preview payload (no API call):")
		fmt.Println(string(payload))
		fmt.Println("Target URL: " + moltbook.DefaultBaseURL + "/posts")
	}
	return nil
}

func newListCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the numbered question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			bank, err := questions.Load(cfg.QuestionsPath)
			if err != nil {
				return err
			}
			for i, q := range bank {
				fmt.Printf("%02d. %s\n", i+1, q)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every question against the length rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			bank, err := questions.Load(cfg.QuestionsPath)
			if err != nil {
				return err
			}
			if problems := questions.Validate(bank); len(problems) > 0 {
				return &domain.ValidationError{Problems: problems}
			}
			fmt.Printf("All %d questions are valid.\n", len(bank))
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	return cmd
}
