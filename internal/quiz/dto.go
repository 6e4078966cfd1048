package quiz

type StartRunResponse struct {
	Token     string           `json:"token"`
	RunID     string           `json:"run_id"`
	Title     string           `json:"title,omitempty"`
	Questions []PublicQuestion `json:"questions"`
	Score     Score            `json:"score"`
	Summary   string           `json:"summary"`

	// Mock exams only.
	PassThreshold int   `json:"pass_threshold,omitempty"`
	TimeLimit     int   `json:"time_limit,omitempty"`
	Passed        *bool `json:"passed,omitempty"`
}

type MockExamRequest struct {
	Count int     `json:"count"`
	Seed  *uint64 `json:"seed,omitempty"`
}

type SelectRequest struct {
	Token       string     `json:"token"`
	QuestionID  QuestionID `json:"question_id"`
	OptionIndex *int       `json:"option_index"`
}

type SelectResponse struct {
	Token   string `json:"token"`
	Result  Result `json:"result"`
	Score   Score  `json:"score"`
	Summary string `json:"summary"`
	Passed  *bool  `json:"passed,omitempty"`
}

type ScoreRequest struct {
	Token string `json:"token"`
}

type ScoreResponse struct {
	RunID         string   `json:"run_id"`
	Score         Score    `json:"score"`
	Summary       string   `json:"summary"`
	Results       []Result `json:"results"`
	PassThreshold int      `json:"pass_threshold,omitempty"`
	Passed        *bool    `json:"passed,omitempty"`
}

type GradeRequest struct {
	Answers map[QuestionID]int `json:"answers"`
}

type GradeResponse struct {
	Score   Score    `json:"score"`
	Summary string   `json:"summary"`
	Results []Result `json:"results"`
}

type CheckRequest struct {
	OptionIndex *int `json:"option_index"`
}
