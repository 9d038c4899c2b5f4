package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"a11y-detective/internal/domain"
	"go.uber.org/zap"
)

// KV abstracts the durable key-value slot holding the serialized leaderboard
// (Redis, in-memory, etc). Get reports found=false when the slot is empty.
type KV interface {
	Get(ctx context.Context) (data []byte, found bool, err error)
	Set(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// Store is the durable ranked record of finished sessions. Entries are kept
// as one JSON array under a single key; writes are read-modify-write with a
// single storage call, so a failed write never clobbers prior entries.
type Store struct {
	kv  KV
	log *zap.Logger
	now func() time.Time
}

// NewStore builds a store over the given KV slot. A nil logger is replaced
// with a no-op one.
func NewStore(kv KV, log *zap.Logger) *Store {
	return NewStoreWithClock(kv, log, time.Now)
}

// NewStoreWithClock allows deterministic timestamps in tests.
func NewStoreWithClock(kv KV, log *zap.Logger, now func() time.Time) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log, now: now}
}

// SaveScore appends one entry, stamping its creation time. Prior entries are
// re-read first and the whole sequence is written back in one Set call.
func (s *Store) SaveScore(ctx context.Context, entry domain.ScoreEntry) error {
	entries := s.Entries(ctx)

	entry.Timestamp = s.now().UTC().Format(time.RFC3339)
	entries = append(entries, entry)

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := s.kv.Set(ctx, data); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	return nil
}

// Entries returns the full persisted sequence. Storage or parse failures are
// logged and reported as an empty leaderboard, never as an error: the game
// stays playable with persistence broken.
func (s *Store) Entries(ctx context.Context) []domain.ScoreEntry {
	data, found, err := s.kv.Get(ctx)
	if err != nil {
		s.log.Warn("leaderboard read failed", zap.Error(err))
		return []domain.ScoreEntry{}
	}
	if !found {
		return []domain.ScoreEntry{}
	}

	var entries []domain.ScoreEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.Warn("leaderboard data corrupt, treating as empty", zap.Error(err))
		return []domain.ScoreEntry{}
	}
	if entries == nil {
		entries = []domain.ScoreEntry{}
	}
	return entries
}

// ByDifficulty filters to one tier and ranks: accuracy percentage descending,
// then elapsed seconds ascending (faster wins ties). The sort is stable, so
// entries tied on both keys keep their insertion order.
func (s *Store) ByDifficulty(ctx context.Context, difficulty domain.Difficulty) []domain.ScoreEntry {
	ranked := []domain.ScoreEntry{}
	for _, entry := range s.Entries(ctx) {
		if entry.Difficulty == difficulty {
			ranked = append(ranked, entry)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Percentage != ranked[j].Percentage {
			return ranked[i].Percentage > ranked[j].Percentage
		}
		return ranked[i].TimeInSeconds < ranked[j].TimeInSeconds
	})
	return ranked
}

// BestForUser returns the top-ranked entry for one student in one difficulty,
// or ErrNoScores when they have none there.
func (s *Store) BestForUser(ctx context.Context, sid string, difficulty domain.Difficulty) (domain.ScoreEntry, error) {
	for _, entry := range s.ByDifficulty(ctx, difficulty) {
		if entry.SID == sid {
			return entry, nil
		}
	}
	return domain.ScoreEntry{}, domain.ErrNoScores
}

// Clear deletes the entire persisted sequence in one storage call.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}
	return nil
}

// FormatElapsedTime renders seconds as m:ss with the seconds zero-padded and
// no bound on the minutes component (3661 -> "61:01").
func FormatElapsedTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
