package catalog_test

import (
	"testing"

	"a11y-detective/internal/catalog"
	"a11y-detective/internal/domain"
)

func TestLoadEmbeddedBanks(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load embedded banks: %v", err)
	}

	stats := cat.Stats()
	if stats.WCAG21.Total == 0 || stats.WCAG22.Total == 0 {
		t.Fatalf("expected questions in both banks, got %d/%d", stats.WCAG21.Total, stats.WCAG22.Total)
	}
	for _, tier := range domain.Difficulties {
		if len(cat.Questions(tier, domain.Combined, 0)) == 0 {
			t.Fatalf("no combined questions for tier %s", tier)
		}
	}

	// every loaded question carries its bank's version
	for version, tiers := range map[domain.RulesetVersion]map[domain.Difficulty][]domain.Question{
		domain.WCAG21: cat.QuestionsByVersion(domain.WCAG21),
		domain.WCAG22: cat.QuestionsByVersion(domain.WCAG22),
	} {
		for tier, questions := range tiers {
			for _, q := range questions {
				if q.Version != version {
					t.Fatalf("question %d in %s/%s has version %q", q.ID, version, tier, q.Version)
				}
			}
		}
	}
}

func TestParseBankRequiresVersion(t *testing.T) {
	_, err := catalog.ParseBank([]byte("questions:\n  beginner: []\n"))
	if err == nil {
		t.Fatal("expected an error for a bank without a version")
	}
}

func TestParseBankRejectsGarbage(t *testing.T) {
	if _, err := catalog.ParseBank([]byte("{not yaml")); err == nil {
		t.Fatal("expected a parse error")
	}
}
