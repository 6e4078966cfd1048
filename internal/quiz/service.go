package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/saulo-duarte/studycentre/internal/config"
	"github.com/saulo-duarte/studycentre/internal/runtoken"
	"github.com/sirupsen/logrus"
)

type QuizService interface {
	StartPageRun(ctx context.Context, slug string) (*StartRunResponse, error)
	StartMockExam(ctx context.Context, bank string, req MockExamRequest) (*StartRunResponse, error)
	Select(ctx context.Context, req SelectRequest) (*SelectResponse, error)
	Score(ctx context.Context, token string) (*ScoreResponse, error)
	GradePage(ctx context.Context, slug string, answers map[QuestionID]int) (*GradeResponse, error)
	CheckInline(ctx context.Context, slug string, id QuestionID, option int) (Result, error)
}

type quizService struct {
	catalog Catalog
	ttl     time.Duration
}

func NewService(catalog Catalog, ttl time.Duration) QuizService {
	return &quizService{catalog: catalog, ttl: ttl}
}

func (s *quizService) StartPageRun(ctx context.Context, slug string) (*StartRunResponse, error) {
	log := config.WithContext(ctx).WithField("slug", slug)

	q, err := s.catalog.PageQuiz(ctx, slug)
	if err != nil {
		return nil, err
	}

	src := runtoken.Source{Kind: runtoken.SourcePage, Ref: slug}
	resp, err := s.start(q, src)
	if err != nil {
		log.WithError(err).Error("Failed to start quiz run")
		return nil, err
	}
	log.WithField("run_id", resp.RunID).Info("Quiz run started")
	return resp, nil
}

// StartMockExam draws a category-balanced selection from a question bank.
// The drawn ids are pinned in the token so later requests see the same exam.
func (s *quizService) StartMockExam(ctx context.Context, bank string, req MockExamRequest) (*StartRunResponse, error) {
	log := config.WithContext(ctx).WithField("bank", bank)

	exam, err := s.catalog.BankExam(ctx, bank)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewPCG(*req.Seed, 0))
	}
	drawn := Sample(exam.Questions, exam.Categories, exam.Size(req.Count), rng)

	ids := make([]string, 0, len(drawn))
	for _, q := range drawn {
		ids = append(ids, string(q.ID))
	}
	src := runtoken.Source{Kind: runtoken.SourceBank, Ref: bank, Questions: ids}

	resp, err := s.start(Quiz{Title: exam.Title, Questions: drawn}, src)
	if err != nil {
		log.WithError(err).Error("Failed to start mock exam")
		return nil, err
	}
	resp.PassThreshold = exam.PassThreshold
	resp.TimeLimit = exam.TimeLimit
	resp.Passed = verdict(exam, resp.Score)
	log.WithFields(logrus.Fields{"run_id": resp.RunID, "questions": len(drawn)}).Info("Mock exam started")
	return resp, nil
}

func (s *quizService) start(q Quiz, src runtoken.Source) (*StartRunResponse, error) {
	token, err := runtoken.Generate(src, nil, s.ttl)
	if err != nil {
		return nil, err
	}
	claims, err := runtoken.Validate(token)
	if err != nil {
		return nil, err
	}

	score := NewSequencer(q).Score()
	return &StartRunResponse{
		Token:     token,
		RunID:     claims.ID,
		Title:     q.Title,
		Questions: q.Public().Questions,
		Score:     score,
		Summary:   score.String(),
	}, nil
}

func (s *quizService) Select(ctx context.Context, req SelectRequest) (*SelectResponse, error) {
	log := config.WithContext(ctx)

	if req.OptionIndex == nil {
		return nil, fmt.Errorf("%w: option_index is required", ErrOptionOutOfRange)
	}

	claims, run, err := s.resume(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	seq := run.seq

	res, err := seq.Select(req.QuestionID, *req.OptionIndex)
	if err != nil {
		log.WithError(err).WithField("run_id", claims.ID).Warn("Rejected selection")
		return nil, err
	}

	token, err := runtoken.Refresh(claims, encodeAnswers(seq.Answers()), s.ttl)
	if err != nil {
		log.WithError(err).Error("Failed to refresh run token")
		return nil, err
	}

	score := seq.Score()
	return &SelectResponse{Token: token, Result: res, Score: score, Summary: score.String(), Passed: verdict(run.exam, score)}, nil
}

func (s *quizService) Score(ctx context.Context, token string) (*ScoreResponse, error) {
	claims, run, err := s.resume(ctx, token)
	if err != nil {
		return nil, err
	}
	score := run.seq.Score()
	return &ScoreResponse{
		RunID:         claims.ID,
		Score:         score,
		Summary:       score.String(),
		Results:       run.seq.Results(),
		PassThreshold: run.exam.PassThreshold,
		Passed:        verdict(run.exam, score),
	}, nil
}

func (s *quizService) GradePage(ctx context.Context, slug string, answers map[QuestionID]int) (*GradeResponse, error) {
	q, err := s.catalog.PageQuiz(ctx, slug)
	if err != nil {
		return nil, err
	}
	score, results, err := Grade(q, answers)
	if err != nil {
		return nil, err
	}
	return &GradeResponse{Score: score, Summary: score.String(), Results: results}, nil
}

func (s *quizService) CheckInline(ctx context.Context, slug string, id QuestionID, option int) (Result, error) {
	q, err := s.catalog.PageCheck(ctx, slug, id)
	if err != nil {
		return Result{}, err
	}
	return NewCheck(q).Select(option)
}

// resumedRun is a run rebuilt from its token. exam is zero for page runs.
type resumedRun struct {
	seq  *Sequencer
	exam Exam
}

// resume rebuilds a run from its token: the questions come from the
// catalog, the selections from the token claims.
func (s *quizService) resume(ctx context.Context, token string) (*runtoken.Claims, *resumedRun, error) {
	log := config.WithContext(ctx)

	claims, err := runtoken.Validate(token)
	if err != nil {
		log.WithError(err).Warn("Rejected run token")
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidRunToken, err)
	}
	log = log.WithField("run_id", claims.ID)

	var (
		q    Quiz
		exam Exam
	)
	switch claims.Source.Kind {
	case runtoken.SourcePage:
		q, err = s.catalog.PageQuiz(ctx, claims.Source.Ref)
	case runtoken.SourceBank:
		q, exam, err = s.bankRun(ctx, log, claims.Source)
	default:
		err = fmt.Errorf("%w: %w", ErrInvalidRunToken, runtoken.ErrUnknownSource)
	}
	if err != nil {
		return nil, nil, err
	}

	seq := NewSequencer(q)
	for id, option := range claims.Answers {
		if _, err := seq.Select(QuestionID(id), option); err != nil {
			// Content changed under a live run; the stale answer is dropped.
			if errors.Is(err, ErrUnknownQuestion) || errors.Is(err, ErrOptionOutOfRange) {
				log.WithError(err).Warn("Dropping stale answer")
				continue
			}
			return nil, nil, err
		}
	}
	return claims, &resumedRun{seq: seq, exam: exam}, nil
}

// bankRun rebuilds the pinned exam questions. Questions removed from the
// bank since the run started are dropped.
func (s *quizService) bankRun(ctx context.Context, log logrus.FieldLogger, src runtoken.Source) (Quiz, Exam, error) {
	exam, err := s.catalog.BankExam(ctx, src.Ref)
	if err != nil {
		return Quiz{}, Exam{}, err
	}
	ids := make([]QuestionID, 0, len(src.Questions))
	for _, id := range src.Questions {
		ids = append(ids, QuestionID(id))
	}
	questions, missing := Subset(exam.Questions, ids)
	for _, id := range missing {
		log.WithFields(logrus.Fields{"bank": src.Ref, "question_id": id}).Warn("Dropping stale question")
	}
	return Quiz{Title: exam.Title, Questions: questions}, exam, nil
}

// verdict is nil unless the exam has a pass threshold.
func verdict(exam Exam, score Score) *bool {
	passed, ok := exam.Verdict(score)
	if !ok {
		return nil
	}
	return &passed
}

func encodeAnswers(answers map[QuestionID]int) map[string]int {
	out := make(map[string]int, len(answers))
	for id, option := range answers {
		out[string(id)] = option
	}
	return out
}
