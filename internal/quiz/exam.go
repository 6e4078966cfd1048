package quiz

// Exam is a question bank together with the rules for drawing a mock exam
// from it.
type Exam struct {
	Title      string
	Questions  []Question
	Categories []string
	// TotalQuestions is the default exam size; 0 means DefaultMockExamSize.
	TotalQuestions int
	// PassThreshold is the percentage needed to pass; 0 disables the verdict.
	PassThreshold int
	// TimeLimit is advisory, in seconds. The client runs the clock.
	TimeLimit int
}

// Size resolves the number of questions to draw for a requested count.
func (e Exam) Size(requested int) int {
	if requested > 0 {
		return requested
	}
	if e.TotalQuestions > 0 {
		return e.TotalQuestions
	}
	return DefaultMockExamSize
}

// Verdict reports whether score meets the pass threshold. ok is false when
// the exam has no threshold.
func (e Exam) Verdict(score Score) (passed, ok bool) {
	if e.PassThreshold <= 0 {
		return false, false
	}
	return score.Passes(e.PassThreshold), true
}
