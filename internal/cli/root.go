package cli

import (
	"errors"
	"fmt"
	"os"

	"a11y-detective/internal/config"
	"a11y-detective/internal/domain"
	infmemory "a11y-detective/internal/infra/memory"
	infredis "a11y-detective/internal/infra/redis"
	"a11y-detective/internal/leaderboard"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "a11y-detective",
		Short: "WCAG code-review quiz for the terminal",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(newPlayCmd(&configPath))
	cmd.AddCommand(newLeaderboardCmd(&configPath))
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newClearCmd(&configPath))
	return cmd
}

// loadConfig tolerates a missing config file; everything has a default.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Config{}, nil
		}
		return config.Config{}, err
	}
	return cfg, nil
}

// newScoreStore wires the leaderboard to Redis when an address is configured
// and to process memory otherwise. The game stays playable either way; the
// memory fallback just means scores die with the process.
func newScoreStore(cfg config.Config, log *zap.Logger) (*leaderboard.Store, func()) {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv := infredis.NewScoreKV(client, cfg.StorageKey())
		return leaderboard.NewStore(kv, log), func() { _ = client.Close() }
	}
	log.Warn("no redis configured, scores will not survive this process")
	return leaderboard.NewStore(infmemory.NewScoreKV(), log), func() {}
}

func parseDifficulty(raw string) (domain.Difficulty, error) {
	switch domain.Difficulty(raw) {
	case domain.Beginner, domain.Intermediate, domain.Advanced:
		return domain.Difficulty(raw), nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want beginner, intermediate or advanced)", raw)
}

func parseVersion(raw string) (domain.RulesetVersion, error) {
	switch domain.RulesetVersion(raw) {
	case domain.WCAG21, domain.WCAG22, domain.Combined:
		return domain.RulesetVersion(raw), nil
	}
	return "", fmt.Errorf("unknown ruleset version %q (want 2.1, 2.2 or combined)", raw)
}
