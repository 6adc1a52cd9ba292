package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rstrong30/moltbook-agent/internal/core/domain"
)

// Exit codes are part of the CLI contract; the external scheduler branches
// on them.
const (
	exitOK                = 0
	exitNoQuestions       = 1
	exitValidationFailed  = 2
	exitMissingCredential = 3
	exitNotConfirmed      = 4
	exitNotClaimed        = 5
	exitRuntimeFailure    = 10
)

func main() {
	godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "moltbook-agent",
		Short:         "Daily question agent for Moltbook (read-only by default)",
		Long: `moltbook-agent picks one discussion question per day from a curated bank,
optionally publishes it to a submolt, and optionally replies to a bounded
number of qualifying comments. Publishing requires both --post and --confirm;
without them every command is read-only.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newPickCmd(), newListCmd(), newValidateCmd())
	return root
}

func exitCodeFor(err error) int {
	var valErr *domain.ValidationError
	var cfgErr *domain.ConfigurationError
	switch {
	case errors.Is(err, domain.ErrNoQuestions):
		return exitNoQuestions
	case errors.As(err, &valErr), errors.As(err, &cfgErr):
		return exitValidationFailed
	case errors.Is(err, domain.ErrMissingCredential):
		return exitMissingCredential
	case errors.Is(err, domain.ErrNotConfirmed):
		return exitNotConfirmed
	case errors.Is(err, domain.ErrNotClaimed):
		return exitNotClaimed
	default:
		return exitRuntimeFailure
	}
}
