package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/saulo-duarte/studycentre/internal/content"
	"github.com/saulo-duarte/studycentre/internal/page"
	"github.com/saulo-duarte/studycentre/internal/quiz"
	"github.com/saulo-duarte/studycentre/internal/tui"
)

var (
	quizInput io.Reader = os.Stdin
	runQuizUI           = tui.Run
)

func runQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dir := flags.String("dir", "", "Content directory (default: embedded library)")
		bank := flags.Bool("bank", false, "Treat the slug as a question bank and draw a mock exam")
		count := flags.Int("count", 0, "Mock exam size (default: the bank's exam size)")
		seed := flags.Uint64("seed", 0, "Mock exam seed (0 draws a fresh exam)")
		noColor := flags.Bool("no-color", false, "Disable colors")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() != 1 {
			fmt.Fprintln(stderr, "expected exactly one slug")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *count < 0 || *count > quiz.MaxMockExamSize {
			fmt.Fprintf(stderr, "--count must be between 1 and %d\n", quiz.MaxMockExamSize)
			return ExitUsage
		}

		lib, _, err := content.Load(content.Source(*dir), content.Options{})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load content: %v\n", err)
			return ExitError
		}
		catalog := page.NewService(page.NewMemoryRepository(lib), "")

		slug := flags.Arg(0)
		ctx := context.Background()
		var (
			q    quiz.Quiz
			exam quiz.Exam
		)
		if *bank {
			q, exam, err = mockExam(ctx, catalog, slug, *count, *seed)
		} else {
			q, err = catalog.PageQuiz(ctx, slug)
		}
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				fmt.Fprintf(stderr, "No quiz found for %q\n", slug)
			} else {
				fmt.Fprintf(stderr, "Failed to start quiz: %v\n", err)
			}
			return ExitError
		}

		score, err := runQuizUI(q, quizInput, stdout, tui.Options{NoColor: *noColor})
		if err != nil {
			fmt.Fprintf(stderr, "Quiz aborted: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Final score: %s\n", score)
		if passed, ok := exam.Verdict(score); ok {
			verdict := "FAIL"
			if passed {
				verdict = "PASS"
			}
			fmt.Fprintf(stdout, "Result: %s (%d%%, pass mark %d%%)\n", verdict, score.Percent(), exam.PassThreshold)
		}
		return ExitOK
	}
}

func mockExam(ctx context.Context, catalog quiz.Catalog, slug string, count int, seed uint64) (quiz.Quiz, quiz.Exam, error) {
	exam, err := catalog.BankExam(ctx, slug)
	if err != nil {
		return quiz.Quiz{}, quiz.Exam{}, err
	}
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, 0))
	}
	drawn := quiz.Sample(exam.Questions, exam.Categories, exam.Size(count), rng)
	return quiz.Quiz{Title: exam.Title, Questions: drawn}, exam, nil
}
