package domain

// Difficulty classifies questions and play-throughs into tiers.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists the tiers in ascending order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// RulesetVersion identifies which edition of the WCAG guidelines a question
// belongs to, or which pool a session draws from.
type RulesetVersion string

const (
	WCAG21   RulesetVersion = "2.1"
	WCAG22   RulesetVersion = "2.2"
	Combined RulesetVersion = "combined"
)

// Question is one multiple-choice item. Questions are immutable once loaded
// and read-only to every consumer; CorrectOption always indexes Options.
type Question struct {
	ID            int            `yaml:"id" json:"id"`
	Title         string         `yaml:"title" json:"title"`
	Code          string         `yaml:"code" json:"code"`
	Prompt        string         `yaml:"prompt" json:"prompt"`
	Options       []string       `yaml:"options" json:"options"`
	CorrectOption int            `yaml:"correctOption" json:"correctOption"`
	Explanation   string         `yaml:"explanation" json:"explanation"`
	RuleReference string         `yaml:"ruleReference" json:"ruleReference"`
	Version       RulesetVersion `yaml:"version" json:"version"`
}

// AnswerRecord captures one judged submission. Chosen and Correct are
// original (pre-shuffle) option indexes.
type AnswerRecord struct {
	QuestionID int  `json:"questionId"`
	Chosen     int  `json:"chosen"`
	Correct    int  `json:"correct"`
	IsCorrect  bool `json:"isCorrect"`
}

// GameResult is the outcome of a completed session.
type GameResult struct {
	SessionID      string
	Difficulty     Difficulty
	Version        RulesetVersion
	Score          int
	TotalQuestions int
	CorrectAnswers int
	ElapsedSeconds int
	Percentage     int
	Answers        []AnswerRecord
}

// ScoreEntry is one persisted leaderboard record. The JSON field names are
// the storage schema: entries written by earlier builds may miss fields, so
// readers treat absent fields as zero values rather than failing the read.
type ScoreEntry struct {
	SID            string     `json:"sid"`
	Difficulty     Difficulty `json:"difficulty"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"totalQuestions"`
	CorrectAnswers int        `json:"correctAnswers"`
	TimeInSeconds  int        `json:"timeInSeconds"`
	Percentage     int        `json:"percentage"`
	Timestamp      string     `json:"timestamp,omitempty"`
}
