package quiz

import "context"

// Catalog resolves the questions a run or check refers to. A missing page,
// bank or quiz is reported as an error wrapping ErrQuizNotFound.
type Catalog interface {
	PageQuiz(ctx context.Context, slug string) (Quiz, error)
	PageCheck(ctx context.Context, slug string, id QuestionID) (Question, error)
	BankExam(ctx context.Context, slug string) (Exam, error)
}
