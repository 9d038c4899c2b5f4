package game

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"a11y-detective/internal/catalog"
	"a11y-detective/internal/domain"
	"github.com/google/uuid"
)

// PointsPerCorrect is the fixed award for a correct answer.
const PointsPerCorrect = 10

// State tags where a session is inside one play-through. A session is
// created already in progress; "not started" is simply the absence of one.
type State int

const (
	// AnswerPending means the current question is displayed and awaiting a
	// submission.
	AnswerPending State = iota
	// AnswerSubmitted means the current question has been judged and the
	// session is waiting to advance.
	AnswerSubmitted
	// Finished means the last question was advanced past, or the session
	// was abandoned.
	Finished
)

// QuestionView is what the presentation layer renders for the question at
// the cursor. Options are in display (shuffled) order.
type QuestionView struct {
	Index   int // zero-based position in play order
	Total   int
	Title   string
	Code    string
	Prompt  string
	Options []string
}

// Feedback reports the outcome of one submission.
type Feedback struct {
	Correct       bool
	CorrectOption string // canonical text of the right answer
	Explanation   string
	RuleReference string
	Score         int // running score after this submission
}

// Session drives one play-through from start to a scored result. All state
// is private; the presentation layer reads views and never owns game state.
type Session struct {
	id         string
	difficulty domain.Difficulty
	version    domain.RulesetVersion

	mu        sync.Mutex
	questions []domain.Question
	cursor    int
	score     int
	answers   []domain.AnswerRecord
	state     State
	result    *domain.GameResult // nil while in progress or abandoned

	// per-question display state, rebuilt on every question load
	selected int
	options  []string
	mapping  []int // display index -> original option index

	startedAt time.Time
	now       func() time.Time
	rnd       *rand.Rand
	done      chan struct{}
	doneOnce  sync.Once
}

// Start pulls the full pool for the difficulty/version from the catalog
// (or a random subset of count questions when count > 0), shuffles the play
// order, and loads the first question. It fails with ErrEmptyQuestionPool
// when the resolved pool is empty; a populated catalog should never trigger
// that, but it must not be silently playable.
func Start(cat *catalog.Catalog, difficulty domain.Difficulty, version domain.RulesetVersion, count int) (*Session, error) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return StartWithClock(cat, difficulty, version, count, time.Now, rnd)
}

// StartWithClock is Start with an injected clock and random source for
// deterministic tests.
func StartWithClock(cat *catalog.Catalog, difficulty domain.Difficulty, version domain.RulesetVersion, count int, now func() time.Time, rnd *rand.Rand) (*Session, error) {
	pool := cat.Questions(difficulty, version, count)
	if len(pool) == 0 {
		return nil, domain.ErrEmptyQuestionPool
	}

	s := &Session{
		id:         uuid.NewString(),
		difficulty: difficulty,
		version:    version,
		questions:  catalog.Shuffle(rnd, pool),
		startedAt:  now(),
		now:        now,
		rnd:        rnd,
		done:       make(chan struct{}),
	}
	s.loadCurrentLocked()
	return s, nil
}

// ID returns the session identity.
func (s *Session) ID() string { return s.id }

// Difficulty returns the tier this session plays.
func (s *Session) Difficulty() domain.Difficulty { return s.difficulty }

// Version returns the ruleset version the pool was drawn from.
func (s *Session) Version() domain.RulesetVersion { return s.version }

// State returns the current play state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score returns the running score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// loadCurrentLocked shuffles the current question's options and rebuilds the
// answer-mapping. The mapping is valid for this question only.
func (s *Session) loadCurrentLocked() {
	q := s.questions[s.cursor]

	type indexed struct {
		text     string
		original int
	}
	opts := make([]indexed, len(q.Options))
	for i, text := range q.Options {
		opts[i] = indexed{text: text, original: i}
	}
	shuffled := catalog.Shuffle(s.rnd, opts)

	s.options = make([]string, len(shuffled))
	s.mapping = make([]int, len(shuffled))
	for display, opt := range shuffled {
		s.options[display] = opt.text
		s.mapping[display] = opt.original
	}
	s.selected = -1
	s.state = AnswerPending
}

// Current returns the render view for the question at the cursor.
func (s *Session) Current() QuestionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.questions[s.cursor]
	return QuestionView{
		Index:   s.cursor,
		Total:   len(s.questions),
		Title:   q.Title,
		Code:    q.Code,
		Prompt:  q.Prompt,
		Options: append([]string(nil), s.options...),
	}
}

// Select records the pending pick for the current question. It may be called
// repeatedly to change the selection before submission.
func (s *Session) Select(displayIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Finished:
		return domain.ErrSessionFinished
	case AnswerSubmitted:
		return domain.ErrAlreadySubmitted
	}
	if displayIndex < 0 || displayIndex >= len(s.options) {
		return domain.ErrOptionOutOfRange
	}
	s.selected = displayIndex
	return nil
}

// Submit judges the pending selection. The display index is mapped back
// through the answer-mapping to the original option index before comparison,
// so a predictable on-screen position is never always correct. Exactly one
// AnswerRecord is appended per question; a second submit for the same cursor
// is rejected to keep score accounting correct under replayed UI events.
func (s *Session) Submit() (Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Finished:
		return Feedback{}, domain.ErrSessionFinished
	case AnswerSubmitted:
		return Feedback{}, domain.ErrAlreadySubmitted
	}
	if s.selected < 0 {
		return Feedback{}, domain.ErrNoSelection
	}

	q := s.questions[s.cursor]
	original := s.mapping[s.selected]
	correct := original == q.CorrectOption

	s.answers = append(s.answers, domain.AnswerRecord{
		QuestionID: q.ID,
		Chosen:     original,
		Correct:    q.CorrectOption,
		IsCorrect:  correct,
	})
	if correct {
		s.score += PointsPerCorrect
	}
	s.state = AnswerSubmitted

	return Feedback{
		Correct:       correct,
		CorrectOption: q.Options[q.CorrectOption],
		Explanation:   q.Explanation,
		RuleReference: q.RuleReference,
		Score:         s.score,
	}, nil
}

// Advance moves to the next question, or finalizes the session after the
// last one. It returns (nil, nil) when a fresh question was loaded and the
// finished result otherwise. Repeat calls after completion return the same
// result. Advancing an unsubmitted question is rejected.
func (s *Session) Advance() (*domain.GameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Finished:
		if s.result == nil {
			return nil, domain.ErrSessionFinished
		}
		return s.result, nil
	case AnswerPending:
		return nil, domain.ErrAnswerPending
	}

	if s.cursor+1 < len(s.questions) {
		s.cursor++
		s.loadCurrentLocked()
		return nil, nil
	}

	return s.finalizeLocked(), nil
}

// finalizeLocked stops the timer and derives the final result. The score is
// re-summed from the answer log instead of trusting the running counter, so
// out-of-order UI events can never double-count.
func (s *Session) finalizeLocked() *domain.GameResult {
	s.stopTimer()

	correct := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			correct++
		}
	}
	total := len(s.answers)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(correct) / float64(total) * 100))
	}

	s.state = Finished
	s.score = correct * PointsPerCorrect
	s.result = &domain.GameResult{
		SessionID:      s.id,
		Difficulty:     s.difficulty,
		Version:        s.version,
		Score:          s.score,
		TotalQuestions: total,
		CorrectAnswers: correct,
		ElapsedSeconds: int(s.now().Sub(s.startedAt).Seconds()),
		Percentage:     percentage,
		Answers:        append([]domain.AnswerRecord(nil), s.answers...),
	}
	return s.result
}

// Abandon discards an in-progress session: the timer stops and no result is
// recorded. Abandoning a finished session is a no-op.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Finished {
		return
	}
	s.state = Finished
	s.stopTimer()
}

// ElapsedSeconds returns wall-clock seconds since the session started, or
// the frozen final value once the session is finished.
func (s *Session) ElapsedSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result != nil {
		return s.result.ElapsedSeconds
	}
	return int(s.now().Sub(s.startedAt).Seconds())
}

// Elapsed emits the running elapsed-seconds value once per interval for
// display purposes. The channel closes when the session finishes, is
// abandoned, or the returned cancel function runs; nothing is emitted after
// that. The caller must invoke cancel to avoid leaks.
func (s *Session) Elapsed(interval time.Duration) (<-chan int, func()) {
	ch := make(chan int, 1)
	stop := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(stop) }) }

	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case ch <- s.ElapsedSeconds():
				default:
					// slow reader; drop the stale tick
					select {
					case <-ch:
					default:
					}
					ch <- s.ElapsedSeconds()
				}
			case <-stop:
				return
			case <-s.done:
				return
			}
		}
	}()
	return ch, cancel
}

func (s *Session) stopTimer() {
	s.doneOnce.Do(func() { close(s.done) })
}
