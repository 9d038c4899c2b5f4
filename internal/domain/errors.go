package domain

import "errors"

var (
	// ErrEmptyQuestionPool is returned when a session is started for a
	// difficulty/version combination that resolves to no questions.
	ErrEmptyQuestionPool = errors.New("question pool is empty")
	// ErrNoSelection is returned when an answer is submitted before one is picked.
	ErrNoSelection = errors.New("no answer selected")
	// ErrAlreadySubmitted rejects a second submission for the same question.
	ErrAlreadySubmitted = errors.New("answer already submitted")
	// ErrAnswerPending is returned when advancing before the current question
	// has been submitted.
	ErrAnswerPending = errors.New("current question not yet submitted")
	// ErrOptionOutOfRange indicates a selection outside the displayed options.
	ErrOptionOutOfRange = errors.New("option index out of range")
	// ErrSessionFinished rejects operations on a finished or abandoned session.
	ErrSessionFinished = errors.New("session already finished")
	// ErrNoScores signals a user has no saved entries for a difficulty.
	ErrNoScores = errors.New("no scores recorded")
)
