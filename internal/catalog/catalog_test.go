package catalog_test

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"a11y-detective/internal/catalog"
	"a11y-detective/internal/domain"
)

func makeQuestions(idStart, n int, reference string) []domain.Question {
	questions := make([]domain.Question, n)
	for i := 0; i < n; i++ {
		id := idStart + i
		questions[i] = domain.Question{
			ID:     id,
			Title:  fmt.Sprintf("Question %d", id),
			Prompt: "Pick the right option",
			Options: []string{
				fmt.Sprintf("right %d", id),
				fmt.Sprintf("wrong %d-a", id),
				fmt.Sprintf("wrong %d-b", id),
			},
			CorrectOption: 0,
			RuleReference: reference,
		}
	}
	return questions
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		catalog.Bank{
			Version: domain.WCAG21,
			Questions: map[domain.Difficulty][]domain.Question{
				domain.Beginner:     makeQuestions(1, 10, "WCAG 2.1 Success Criterion 1.1.1"),
				domain.Intermediate: makeQuestions(11, 4, "WCAG 2.1 Success Criterion 2.4.1"),
				domain.Advanced:     makeQuestions(15, 3, "WCAG 2.1 Success Criterion 1.3.1"),
			},
		},
		catalog.Bank{
			Version: domain.WCAG22,
			Questions: map[domain.Difficulty][]domain.Question{
				domain.Beginner:     makeQuestions(101, 10, "WCAG 2.2 Success Criterion 2.4.11"),
				domain.Intermediate: makeQuestions(111, 2, "WCAG 2.2 Success Criterion 3.3.7"),
				domain.Advanced:     makeQuestions(113, 1, "WCAG 2.2 Success Criterion 2.4.13"),
			},
		},
	)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat
}

func TestShuffleIsPermutation(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	original := append([]int(nil), in...)

	out := catalog.Shuffle(rnd, in)
	if len(out) != len(in) {
		t.Fatalf("length changed: got %d, want %d", len(out), len(in))
	}
	if !reflect.DeepEqual(in, original) {
		t.Fatalf("input was mutated: %v", in)
	}

	counts := map[int]int{}
	for _, v := range in {
		counts[v]++
	}
	for _, v := range out {
		counts[v]--
	}
	for v, c := range counts {
		if c != 0 {
			t.Fatalf("output is not a permutation: element %d off by %d", v, c)
		}
	}
}

func TestShuffleTrivialInputs(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	if got := catalog.Shuffle(rnd, []int{}); len(got) != 0 {
		t.Fatalf("empty input: got %v", got)
	}
	if got := catalog.Shuffle(rnd, []int{7}); len(got) != 1 || got[0] != 7 {
		t.Fatalf("single input: got %v", got)
	}
}

func TestShuffleActuallyShuffles(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	in := []int{1, 2, 3, 4, 5}

	allIdentical := true
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(catalog.Shuffle(rnd, in), in) {
			allIdentical = false
			break
		}
	}
	if allIdentical {
		t.Fatal("10 shuffles of a 5-element slice all matched the input")
	}
}

func TestQuestionsCombinedIsUnion(t *testing.T) {
	cat := newTestCatalog(t)

	got := cat.Questions(domain.Beginner, domain.Combined, 0)
	if len(got) != 20 {
		t.Fatalf("combined beginner pool: got %d questions, want 20", len(got))
	}
	if stats := cat.Stats(); stats.Combined.Beginner != 20 {
		t.Fatalf("combined beginner count: got %d, want 20", stats.Combined.Beginner)
	}
}

func TestQuestionsSubset(t *testing.T) {
	cat := newTestCatalog(t)

	subset := cat.Questions(domain.Beginner, domain.WCAG21, 3)
	if len(subset) != 3 {
		t.Fatalf("subset size: got %d, want 3", len(subset))
	}

	pool := map[int]struct{}{}
	for _, q := range cat.Questions(domain.Beginner, domain.WCAG21, 0) {
		pool[q.ID] = struct{}{}
	}
	seen := map[int]struct{}{}
	for _, q := range subset {
		if _, ok := pool[q.ID]; !ok {
			t.Fatalf("subset question %d not in pool", q.ID)
		}
		if _, dup := seen[q.ID]; dup {
			t.Fatalf("subset repeats question %d", q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	// count >= pool size returns the whole pool
	if got := cat.Questions(domain.Beginner, domain.WCAG21, 99); len(got) != 10 {
		t.Fatalf("oversized count: got %d questions, want 10", len(got))
	}
}

func TestQuestionsUnknownDifficulty(t *testing.T) {
	cat := newTestCatalog(t)
	if got := cat.Questions("expert", domain.Combined, 0); len(got) != 0 {
		t.Fatalf("unknown difficulty: got %d questions, want 0", len(got))
	}
}

func TestAllQuestionsIsMemoized(t *testing.T) {
	cat := newTestCatalog(t)

	first := cat.AllQuestions()
	second := cat.AllQuestions()
	if reflect.ValueOf(first).Pointer() != reflect.ValueOf(second).Pointer() {
		t.Fatal("AllQuestions returned different objects across calls")
	}
	if len(first[domain.Beginner]) != 20 {
		t.Fatalf("aggregate beginner: got %d, want 20", len(first[domain.Beginner]))
	}
}

func TestQuestionsByCriteria(t *testing.T) {
	cat := newTestCatalog(t)

	matches := cat.QuestionsByCriteria("2.4.11")
	if len(matches) != 10 {
		t.Fatalf("criteria 2.4.11: got %d matches, want 10", len(matches))
	}
	for _, q := range matches {
		if q.RuleReference != "WCAG 2.2 Success Criterion 2.4.11" {
			t.Fatalf("unexpected match: %q", q.RuleReference)
		}
	}

	if got := cat.QuestionsByCriteria("9.9.9"); len(got) != 0 {
		t.Fatalf("no-match criteria: got %d, want 0", len(got))
	}
}

func TestQuestionsByVersion(t *testing.T) {
	cat := newTestCatalog(t)

	v22 := cat.QuestionsByVersion(domain.WCAG22)
	if len(v22[domain.Beginner]) != 10 || len(v22[domain.Intermediate]) != 2 || len(v22[domain.Advanced]) != 1 {
		t.Fatalf("2.2 mapping: got %d/%d/%d", len(v22[domain.Beginner]), len(v22[domain.Intermediate]), len(v22[domain.Advanced]))
	}
}

func TestStatsCombinedIsAlwaysTheSum(t *testing.T) {
	cat := newTestCatalog(t)
	stats := cat.Stats()

	checks := []struct {
		name             string
		v21, v22, merged int
	}{
		{"beginner", stats.WCAG21.Beginner, stats.WCAG22.Beginner, stats.Combined.Beginner},
		{"intermediate", stats.WCAG21.Intermediate, stats.WCAG22.Intermediate, stats.Combined.Intermediate},
		{"advanced", stats.WCAG21.Advanced, stats.WCAG22.Advanced, stats.Combined.Advanced},
		{"total", stats.WCAG21.Total, stats.WCAG22.Total, stats.Combined.Total},
	}
	for _, check := range checks {
		if check.merged != check.v21+check.v22 {
			t.Fatalf("%s: combined %d != %d + %d", check.name, check.merged, check.v21, check.v22)
		}
	}
}

func TestNewRejectsInvalidBanks(t *testing.T) {
	valid := makeQuestions(1, 1, "ref")

	cases := []struct {
		name string
		bank catalog.Bank
	}{
		{
			name: "correct option outside options",
			bank: catalog.Bank{Version: domain.WCAG21, Questions: map[domain.Difficulty][]domain.Question{
				domain.Beginner: {{ID: 1, Options: []string{"a", "b"}, CorrectOption: 2}},
			}},
		},
		{
			name: "single option",
			bank: catalog.Bank{Version: domain.WCAG21, Questions: map[domain.Difficulty][]domain.Question{
				domain.Beginner: {{ID: 1, Options: []string{"a"}, CorrectOption: 0}},
			}},
		},
		{
			name: "duplicate id",
			bank: catalog.Bank{Version: domain.WCAG21, Questions: map[domain.Difficulty][]domain.Question{
				domain.Beginner: append(append([]domain.Question(nil), valid...), valid...),
			}},
		},
		{
			name: "combined is not a concrete bank version",
			bank: catalog.Bank{Version: domain.Combined, Questions: map[domain.Difficulty][]domain.Question{
				domain.Beginner: valid,
			}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := catalog.New(tc.bank); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
