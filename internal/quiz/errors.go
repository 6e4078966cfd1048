package quiz

import "errors"

var (
	ErrEmptyPrompt            = errors.New("question prompt is empty")
	ErrTooFewOptions          = errors.New("question needs at least two options")
	ErrCorrectIndexOutOfRange = errors.New("correct index is outside the options")
	ErrDuplicateQuestionID    = errors.New("duplicate question id")
	ErrMissingQuestionID      = errors.New("question id is empty")

	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrUnknownQuestion  = errors.New("question not in quiz")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrInvalidRunToken  = errors.New("invalid run token")
)
