package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"a11y-detective/internal/domain"
	"a11y-detective/internal/leaderboard"
	"a11y-detective/internal/logger"
	"github.com/spf13/cobra"
)

func newLeaderboardCmd(configPath *string) *cobra.Command {
	var difficulty string
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show ranked scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Env)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			store, closeStore := newScoreStore(cfg, log)
			defer closeStore()

			tiers := domain.Difficulties
			if difficulty != "" {
				tier, err := parseDifficulty(difficulty)
				if err != nil {
					return err
				}
				tiers = []domain.Difficulty{tier}
			}

			out := cmd.OutOrStdout()
			for _, tier := range tiers {
				printRanked(out, tier, store.ByDifficulty(cmd.Context(), tier))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "limit to one tier")
	return cmd
}

func printRanked(out io.Writer, tier domain.Difficulty, entries []domain.ScoreEntry) {
	fmt.Fprintf(out, "\n%s\n", tier)
	if len(entries) == 0 {
		fmt.Fprintln(out, "  no scores yet")
		return
	}

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  RANK\tSID\tSCORE\tACCURACY\tTIME\tDATE")
	for i, entry := range entries {
		fmt.Fprintf(w, "  %d\t%s\t%d\t%d%%\t%s\t%s\n",
			i+1, entry.SID, entry.Score, entry.Percentage,
			leaderboard.FormatElapsedTime(entry.TimeInSeconds), entry.Timestamp)
	}
	_ = w.Flush()
}

func newClearCmd(configPath *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved score",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the leaderboard without --yes")
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Env)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			store, closeStore := newScoreStore(cfg, log)
			defer closeStore()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Leaderboard cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
