package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"a11y-detective/internal/catalog"
	"a11y-detective/internal/domain"
	"a11y-detective/internal/game"
	"a11y-detective/internal/leaderboard"
	"a11y-detective/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sidPattern is the student identifier format: one letter, six digits.
var sidPattern = regexp.MustCompile(`^[A-Za-z][0-9]{6}$`)

func newPlayCmd(configPath *string) *cobra.Command {
	var (
		difficulty string
		version    string
		count      int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one quiz round",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, *configPath, difficulty, version, count)
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.Beginner), "beginner, intermediate or advanced")
	cmd.Flags().StringVar(&version, "version", string(domain.Combined), "2.1, 2.2 or combined")
	cmd.Flags().IntVar(&count, "count", 0, "questions per round (0 = full pool)")
	return cmd
}

func runPlay(cmd *cobra.Command, configPath, rawDifficulty, rawVersion string, count int) error {
	difficulty, err := parseDifficulty(rawDifficulty)
	if err != nil {
		return err
	}
	version, err := parseVersion(rawVersion)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
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

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	if count == 0 {
		count = cfg.Game.QuestionsPerRound
	}
	sess, err := game.Start(cat, difficulty, version, count)
	if errors.Is(err, domain.ErrEmptyQuestionPool) {
		return fmt.Errorf("no questions available for %s/%s", difficulty, version)
	}
	if err != nil {
		return err
	}
	defer sess.Abandon()

	// Display-only timer: one update per second, cancelled with the session.
	elapsedCh, stopTimer := sess.Elapsed(time.Second)
	defer stopTimer()
	var elapsed atomic.Int64
	go func() {
		for e := range elapsedCh {
			elapsed.Store(int64(e))
		}
	}()

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	result, err := playRound(sess, in, out, &elapsed)
	if err != nil || result == nil {
		return err
	}

	printResults(out, result)
	saveResult(cmd, in, out, store, log, result)
	return nil
}

// playRound drives the question loop. A nil result without error means the
// player quit mid-round; nothing is recorded in that case.
func playRound(sess *game.Session, in *bufio.Scanner, out io.Writer, elapsed *atomic.Int64) (*domain.GameResult, error) {
	for {
		view := sess.Current()
		fmt.Fprintf(out, "\nQuestion %d of %d  |  Score: %d  |  Time: %s\n",
			view.Index+1, view.Total, sess.Score(), leaderboard.FormatElapsedTime(int(elapsed.Load())))
		fmt.Fprintf(out, "\n%s\n\n%s\n\n%s\n\n", view.Title, indent(view.Code), view.Prompt)
		for i, option := range view.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, option)
		}

		if !promptAnswer(sess, in, out, len(view.Options)) {
			fmt.Fprintln(out, "Round abandoned; nothing recorded.")
			return nil, nil
		}

		feedback, err := sess.Submit()
		if err != nil {
			return nil, err
		}
		if feedback.Correct {
			fmt.Fprintf(out, "\nCorrect! +%d points\n", game.PointsPerCorrect)
		} else {
			fmt.Fprintf(out, "\nNot quite. The answer was: %s\n", feedback.CorrectOption)
		}
		fmt.Fprintf(out, "%s\n(%s)\n", feedback.Explanation, feedback.RuleReference)

		fmt.Fprint(out, "\nPress Enter to continue... ")
		in.Scan()

		result, err := sess.Advance()
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
}

// promptAnswer reads selections until one is accepted. Returns false when
// the player quits or input ends.
func promptAnswer(sess *game.Session, in *bufio.Scanner, out io.Writer, optionCount int) bool {
	for {
		fmt.Fprintf(out, "\nYour answer [1-%d], or q to quit: ", optionCount)
		if !in.Scan() {
			return false
		}
		raw := strings.TrimSpace(in.Text())
		if strings.EqualFold(raw, "q") {
			return false
		}
		pick, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(out, "Please enter a number.")
			continue
		}
		if err := sess.Select(pick - 1); err != nil {
			fmt.Fprintf(out, "That's not one of the options (%v).\n", err)
			continue
		}
		return true
	}
}

func printResults(out io.Writer, result *domain.GameResult) {
	fmt.Fprintf(out, "\nCase closed!\n\n")
	fmt.Fprintf(out, "Final score:   %d\n", result.Score)
	fmt.Fprintf(out, "Accuracy:      %d%% (%d of %d correct)\n",
		result.Percentage, result.CorrectAnswers, result.TotalQuestions)
	fmt.Fprintf(out, "Time:          %s\n", leaderboard.FormatElapsedTime(result.ElapsedSeconds))
	fmt.Fprintf(out, "\n%s\n", badgeFor(result.Percentage))
}

// badgeFor keeps the original game's score bands.
func badgeFor(percentage int) string {
	switch {
	case percentage == 100:
		return "Perfect score! You're an accessibility champion!"
	case percentage >= 80:
		return "Excellent! You have strong accessibility knowledge!"
	case percentage >= 60:
		return "Good job! Keep learning to improve further!"
	case percentage >= 40:
		return "Not bad! Review the explanations to strengthen your skills."
	default:
		return "Keep practicing! Accessibility is a journey."
	}
}

// saveResult asks for a student ID and records the score. Identifier format
// is enforced here; the store itself accepts whatever it is given.
func saveResult(cmd *cobra.Command, in *bufio.Scanner, out io.Writer, store *leaderboard.Store, log *zap.Logger, result *domain.GameResult) {
	var sid string
	for {
		fmt.Fprint(out, "\nStudent ID (one letter + six digits), blank to skip: ")
		if !in.Scan() {
			return
		}
		sid = strings.TrimSpace(in.Text())
		if sid == "" {
			return
		}
		if sidPattern.MatchString(sid) {
			break
		}
		fmt.Fprintln(out, "Invalid format, e.g. A123456.")
	}

	entry := domain.ScoreEntry{
		SID:            sid,
		Difficulty:     result.Difficulty,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		TimeInSeconds:  result.ElapsedSeconds,
		Percentage:     result.Percentage,
	}
	ctx := cmd.Context()
	if err := store.SaveScore(ctx, entry); err != nil {
		log.Warn("score not saved", zap.Error(err))
		fmt.Fprintln(out, "Couldn't save your score, but the round still counts!")
		return
	}
	fmt.Fprintln(out, "Score saved.")

	if best, err := store.BestForUser(ctx, sid, result.Difficulty); err == nil {
		fmt.Fprintf(out, "Your best on %s: %d%% in %s\n",
			best.Difficulty, best.Percentage, leaderboard.FormatElapsedTime(best.TimeInSeconds))
	}
}

func indent(code string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
