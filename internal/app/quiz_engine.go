package app

import (
	"strings"

	"github.com/brg8607/lsm-frontend/internal/domain"
)

// QuizOutcome is the terminal result of a quiz session.
type QuizOutcome struct {
	Score  int
	Passed bool
}

// QuizEngine drives one quiz session: question sequencing, answer selection
// and checking, scoring, and completion. It is purely local state; persisting
// progress is the caller's concern.
type QuizEngine struct {
	quiz       domain.Quiz
	categoryID int
	level      int
	increment  int
	passScore  int

	current  int
	score    int
	selected string
	checked  bool
	finished bool
}

// NewQuizEngine opens a quiz session at resumeIndex. An empty quiz is a load
// failure, not a completed quiz. A resume index at or past the end (stale
// progress from a previously longer quiz) finishes the session immediately.
func NewQuizEngine(quiz domain.Quiz, categoryID, level, resumeIndex, increment, passScore int) (*QuizEngine, error) {
	if len(quiz.Questions) == 0 {
		return nil, domain.ErrEmptyQuiz
	}
	if resumeIndex < 0 {
		resumeIndex = 0
	}
	e := &QuizEngine{
		quiz:       quiz,
		categoryID: categoryID,
		level:      level,
		increment:  increment,
		passScore:  passScore,
		current:    resumeIndex,
	}
	if resumeIndex >= len(quiz.Questions) {
		e.current = len(quiz.Questions) - 1
		e.finished = true
	}
	return e, nil
}

func (e *QuizEngine) CategoryID() int { return e.categoryID }
func (e *QuizEngine) Level() int      { return e.level }
func (e *QuizEngine) Index() int      { return e.current }
func (e *QuizEngine) Score() int      { return e.score }
func (e *QuizEngine) Finished() bool  { return e.finished }
func (e *QuizEngine) Selected() string { return e.selected }
func (e *QuizEngine) Checked() bool   { return e.checked }

// QuestionCount returns the number of questions in the loaded quiz.
func (e *QuizEngine) QuestionCount() int { return len(e.quiz.Questions) }

// Current returns the question being presented, or false once finished.
func (e *QuizEngine) Current() (domain.Question, bool) {
	if e.finished {
		return domain.Question{}, false
	}
	return e.quiz.Questions[e.current], true
}

// Select records the chosen option. Allowed only before the answer is checked;
// repeated selection just changes the choice, never the score.
func (e *QuizEngine) Select(option string) error {
	if e.finished {
		return domain.ErrQuizFinished
	}
	if e.checked {
		return domain.ErrAlreadyChecked
	}
	e.selected = option
	return nil
}

// Check scores the current selection against the correct answer using
// case-insensitive, whitespace-trimmed equality. A question without a correct
// answer never scores. Calling Check twice on one question is rejected.
func (e *QuizEngine) Check() (bool, error) {
	if e.finished {
		return false, domain.ErrQuizFinished
	}
	if e.checked {
		return false, domain.ErrAlreadyChecked
	}
	if e.selected == "" {
		return false, domain.ErrNothingSelected
	}
	e.checked = true
	correct := answerMatches(e.selected, e.quiz.Questions[e.current].CorrectAnswer)
	if correct {
		e.score += e.increment
	}
	return correct, nil
}

// Advance moves to the next question, or finishes the quiz on the last one.
// It returns true when the quiz just finished.
func (e *QuizEngine) Advance() (bool, error) {
	if e.finished {
		return false, domain.ErrQuizFinished
	}
	if !e.checked {
		return false, domain.ErrAnswerNotChecked
	}
	if e.current < len(e.quiz.Questions)-1 {
		e.current++
		e.selected = ""
		e.checked = false
		return false, nil
	}
	e.finished = true
	return true, nil
}

// Outcome reports the accumulated score and whether it clears the pass bar.
func (e *QuizEngine) Outcome() QuizOutcome {
	return QuizOutcome{Score: e.score, Passed: e.score >= e.passScore}
}

func answerMatches(selected, correct string) bool {
	correct = strings.TrimSpace(correct)
	if correct == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(selected), correct)
}
