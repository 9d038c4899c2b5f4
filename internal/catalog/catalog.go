package catalog

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"a11y-detective/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Catalog stores the versioned question banks and serves selection and
// filtering queries. It is immutable after New; the combined aggregate is
// derived lazily and cached for the process lifetime.
type Catalog struct {
	banks map[domain.RulesetVersion]map[domain.Difficulty][]domain.Question

	rnd   *rand.Rand
	rndMu sync.Mutex

	sf         singleflight.Group
	combinedMu sync.RWMutex
	combined   map[domain.Difficulty][]domain.Question
}

// Bank is one version's worth of questions, keyed by difficulty tier.
type Bank struct {
	Version   domain.RulesetVersion
	Questions map[domain.Difficulty][]domain.Question
}

// New builds a catalog from the given banks and validates every question:
// at least two options, a correct index inside the options, and IDs unique
// across the whole catalog.
func New(banks ...Bank) (*Catalog, error) {
	c := &Catalog{
		banks: make(map[domain.RulesetVersion]map[domain.Difficulty][]domain.Question),
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	seen := make(map[int]struct{})
	for _, bank := range banks {
		if bank.Version != domain.WCAG21 && bank.Version != domain.WCAG22 {
			return nil, fmt.Errorf("bank version %q is not a concrete ruleset version", bank.Version)
		}
		if _, ok := c.banks[bank.Version]; ok {
			return nil, fmt.Errorf("duplicate bank for version %q", bank.Version)
		}
		tiers := make(map[domain.Difficulty][]domain.Question, len(bank.Questions))
		for tier, questions := range bank.Questions {
			for _, q := range questions {
				if len(q.Options) < 2 {
					return nil, fmt.Errorf("question %d: needs at least two options, has %d", q.ID, len(q.Options))
				}
				if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
					return nil, fmt.Errorf("question %d: correct option %d outside options", q.ID, q.CorrectOption)
				}
				if _, dup := seen[q.ID]; dup {
					return nil, fmt.Errorf("question %d: duplicate id", q.ID)
				}
				seen[q.ID] = struct{}{}
			}
			tiers[tier] = questions
		}
		c.banks[bank.Version] = tiers
	}
	return c, nil
}

// Questions returns the pool for a difficulty filtered by ruleset version.
// When 0 < count < pool size, the result is a shuffled random subset of
// exactly count questions; otherwise the full pool is returned in bank order
// (play-order shuffling is the caller's job). An unknown difficulty yields
// an empty slice, not an error.
func (c *Catalog) Questions(difficulty domain.Difficulty, version domain.RulesetVersion, count int) []domain.Question {
	var pool []domain.Question
	switch version {
	case domain.WCAG21, domain.WCAG22:
		pool = append(pool, c.banks[version][difficulty]...)
	default:
		pool = append(pool, c.banks[domain.WCAG21][difficulty]...)
		pool = append(pool, c.banks[domain.WCAG22][difficulty]...)
	}

	if count > 0 && count < len(pool) {
		c.rndMu.Lock()
		shuffled := Shuffle(c.rnd, pool)
		c.rndMu.Unlock()
		return shuffled[:count]
	}
	return pool
}

// AllQuestions returns the combined aggregate of every difficulty with the
// union of both ruleset versions. The aggregate is computed once per process;
// repeat calls return the identical cached object.
func (c *Catalog) AllQuestions() map[domain.Difficulty][]domain.Question {
	c.combinedMu.RLock()
	if c.combined != nil {
		defer c.combinedMu.RUnlock()
		return c.combined
	}
	c.combinedMu.RUnlock()

	result, _, _ := c.sf.Do("combined", func() (interface{}, error) {
		c.combinedMu.RLock()
		if c.combined != nil {
			c.combinedMu.RUnlock()
			return c.combined, nil
		}
		c.combinedMu.RUnlock()

		combined := make(map[domain.Difficulty][]domain.Question, len(domain.Difficulties))
		for _, tier := range domain.Difficulties {
			combined[tier] = c.Questions(tier, domain.Combined, 0)
		}

		c.combinedMu.Lock()
		c.combined = combined
		c.combinedMu.Unlock()
		return combined, nil
	})
	return result.(map[domain.Difficulty][]domain.Question)
}

// QuestionsByCriteria scans the full aggregate and returns every question
// whose rule reference contains the given substring (case-sensitive).
func (c *Catalog) QuestionsByCriteria(criteria string) []domain.Question {
	matches := []domain.Question{}
	for _, tier := range domain.Difficulties {
		for _, q := range c.AllQuestions()[tier] {
			if strings.Contains(q.RuleReference, criteria) {
				matches = append(matches, q)
			}
		}
	}
	return matches
}

// QuestionsByVersion returns the full per-difficulty mapping for one concrete
// ruleset version, unfiltered and unshuffled.
func (c *Catalog) QuestionsByVersion(version domain.RulesetVersion) map[domain.Difficulty][]domain.Question {
	out := make(map[domain.Difficulty][]domain.Question, len(domain.Difficulties))
	for _, tier := range domain.Difficulties {
		out[tier] = append([]domain.Question(nil), c.banks[version][tier]...)
	}
	return out
}

// TierCounts holds per-difficulty question counts plus their sum.
type TierCounts struct {
	Beginner     int
	Intermediate int
	Advanced     int
	Total        int
}

// Stats summarizes the catalog per ruleset version. Combined counts are
// always the per-tier sums of the 2.1 and 2.2 banks.
type Stats struct {
	WCAG21   TierCounts
	WCAG22   TierCounts
	Combined TierCounts
}

func (c *Catalog) countsFor(version domain.RulesetVersion) TierCounts {
	tiers := c.banks[version]
	counts := TierCounts{
		Beginner:     len(tiers[domain.Beginner]),
		Intermediate: len(tiers[domain.Intermediate]),
		Advanced:     len(tiers[domain.Advanced]),
	}
	counts.Total = counts.Beginner + counts.Intermediate + counts.Advanced
	return counts
}

// Stats returns question counts for each ruleset version and the combined view.
func (c *Catalog) Stats() Stats {
	v21 := c.countsFor(domain.WCAG21)
	v22 := c.countsFor(domain.WCAG22)
	return Stats{
		WCAG21: v21,
		WCAG22: v22,
		Combined: TierCounts{
			Beginner:     v21.Beginner + v22.Beginner,
			Intermediate: v21.Intermediate + v22.Intermediate,
			Advanced:     v21.Advanced + v22.Advanced,
			Total:        v21.Total + v22.Total,
		},
	}
}
