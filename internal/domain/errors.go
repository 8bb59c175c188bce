package domain

import "errors"

var (
	// ErrNoSession is returned when an authenticated call is attempted with no stored token.
	ErrNoSession = errors.New("no session")
	// ErrEmptyQuiz indicates the backend returned a quiz with zero questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrNoActiveQuiz is returned by quiz operations when no quiz session is open.
	ErrNoActiveQuiz = errors.New("no active quiz")
	// ErrNothingSelected is returned by check when no option has been selected.
	ErrNothingSelected = errors.New("no option selected")
	// ErrAlreadyChecked rejects a second selection or check on the same question.
	ErrAlreadyChecked = errors.New("answer already checked")
	// ErrAnswerNotChecked rejects advancing before the answer was checked.
	ErrAnswerNotChecked = errors.New("answer not checked yet")
	// ErrQuizFinished rejects question operations on a finished quiz.
	ErrQuizFinished = errors.New("quiz already finished")
)
