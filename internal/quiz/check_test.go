package quiz_test

import (
	"errors"
	"testing"

	"github.com/saulo-duarte/studycentre/internal/quiz"
)

func mustQuestion(t *testing.T, id string, correct int, explanation string) quiz.Question {
	t.Helper()
	q, err := quiz.NewQuestion(quiz.QuestionID(id), "Which option is right?", []string{"A", "B", "C", "D"}, correct, explanation)
	if err != nil {
		t.Fatalf("NewQuestion failed: %v", err)
	}
	return q
}

func TestNewQuestion(t *testing.T) {
	cases := []struct {
		name    string
		id      quiz.QuestionID
		prompt  string
		options []string
		correct int
		want    error
	}{
		{"Valid", "q1", "Pick one", []string{"a", "b"}, 1, nil},
		{"MissingID", "", "Pick one", []string{"a", "b"}, 0, quiz.ErrMissingQuestionID},
		{"EmptyPrompt", "q1", "  ", []string{"a", "b"}, 0, quiz.ErrEmptyPrompt},
		{"OneOption", "q1", "Pick one", []string{"a"}, 0, quiz.ErrTooFewOptions},
		{"CorrectIndexTooHigh", "q1", "Pick one", []string{"a", "b"}, 2, quiz.ErrCorrectIndexOutOfRange},
		{"CorrectIndexNegative", "q1", "Pick one", []string{"a", "b"}, -1, quiz.ErrCorrectIndexOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := quiz.NewQuestion(tc.id, tc.prompt, tc.options, tc.correct, "")
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestIsCorrectWithMalformedQuestion(t *testing.T) {
	q := quiz.Question{ID: "bad", Prompt: "?", Options: []string{"a", "b"}, CorrectIndex: 7}
	for i := range q.Options {
		if q.IsCorrect(i) {
			t.Errorf("option %d should never be correct when CorrectIndex is out of range", i)
		}
	}
	if q.IsCorrect(7) {
		t.Error("out-of-range selection must not match an out-of-range CorrectIndex")
	}
}

func TestCheckSelect(t *testing.T) {
	q := mustQuestion(t, "1", 1, "because B")

	t.Run("StartsUnanswered", func(t *testing.T) {
		c := quiz.NewCheck(q)
		if c.Answered() {
			t.Fatal("new check should be unanswered")
		}
		st := c.State()
		if st.SelectedIndex != quiz.Unanswered || st.Explanation != "" || st.IsCorrect {
			t.Errorf("unexpected unanswered state: %+v", st)
		}
	})

	t.Run("CorrectOnlyAtCorrectIndex", func(t *testing.T) {
		for i := range q.Options {
			res, err := quiz.NewCheck(q).Select(i)
			if err != nil {
				t.Fatalf("Select(%d) failed: %v", i, err)
			}
			if res.IsCorrect != (i == q.CorrectIndex) {
				t.Errorf("Select(%d): IsCorrect=%t", i, res.IsCorrect)
			}
		}
	})

	t.Run("ExplanationShownEitherWay", func(t *testing.T) {
		for _, i := range []int{0, 1} {
			res, _ := quiz.NewCheck(q).Select(i)
			if res.Explanation != "because B" {
				t.Errorf("Select(%d): explanation %q", i, res.Explanation)
			}
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		c := quiz.NewCheck(q)
		once, _ := c.Select(2)
		twice, _ := c.Select(2)
		if once != twice {
			t.Errorf("selecting twice changed state: %+v vs %+v", once, twice)
		}
	})

	t.Run("ReselectionLatestWins", func(t *testing.T) {
		c := quiz.NewCheck(q)
		c.Select(0)
		res, _ := c.Select(1)
		if !res.IsCorrect || res.SelectedIndex != 1 {
			t.Errorf("expected latest selection to win, got %+v", res)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		c := quiz.NewCheck(q)
		for _, i := range []int{-1, 4} {
			if _, err := c.Select(i); !errors.Is(err, quiz.ErrOptionOutOfRange) {
				t.Errorf("Select(%d): expected ErrOptionOutOfRange, got %v", i, err)
			}
		}
		if c.Answered() {
			t.Error("rejected selection must not change state")
		}
	})
}

func TestQuestionIDDecoding(t *testing.T) {
	var q quiz.Question
	if err := q.ID.UnmarshalJSON([]byte(`12`)); err != nil || q.ID != "12" {
		t.Errorf("numeric id: got %q, %v", q.ID, err)
	}
	if err := q.ID.UnmarshalJSON([]byte(`"q-3"`)); err != nil || q.ID != "q-3" {
		t.Errorf("string id: got %q, %v", q.ID, err)
	}
	if err := q.ID.UnmarshalJSON([]byte(`{}`)); err == nil {
		t.Error("object id should be rejected")
	}
}
