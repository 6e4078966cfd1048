package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/saulo-duarte/studycentre/internal/content"
)

// parseFlags handles help and argument errors the same way for every
// command. ok is false when the command should return code immediately.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (code int, ok bool) {
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// runValidate loads the library leniently so every issue is listed in one
// pass, then fails on errors (and on warnings with --strict).
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		dir := flags.String("dir", "", "Content directory (default: embedded library)")
		strict := flags.Bool("strict", false, "Treat warnings as failures")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		lib, report, err := content.Load(content.Source(*dir), content.Options{})
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		for _, issue := range report.Issues {
			fmt.Fprintln(stdout, issue.String())
		}
		errs, warnings := len(report.Errors()), len(report.Warnings())
		if errs > 0 || (*strict && warnings > 0) {
			fmt.Fprintf(stderr, "Validation failed: %d error(s), %d warning(s)\n", errs, warnings)
			return ExitError
		}

		fmt.Fprintf(stdout, "Content OK: %d course(s), %d page(s), %d bank(s), %d warning(s)\n",
			len(lib.Courses), len(lib.Pages), len(lib.Banks), warnings)
		return ExitOK
	}
}
