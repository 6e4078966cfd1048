package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/saulo-duarte/studycentre/internal/config"
	"github.com/saulo-duarte/studycentre/internal/content"
	"github.com/saulo-duarte/studycentre/internal/page"
)

// runSeed refuses to write a library that fails a strict load.
func runSeed(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		driver := flags.String("driver", config.DriverSQLite, "Database driver (sqlite or postgres)")
		dsn := flags.String("dsn", "", "Database connection string")
		dir := flags.String("dir", "", "Content directory (default: embedded library)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *dsn == "" {
			fmt.Fprintln(stderr, "--dsn is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		lib, _, err := content.Load(content.Source(*dir), content.Options{Strict: true})
		if err != nil {
			fmt.Fprintf(stderr, "Seed aborted:\n%v\n", err)
			return ExitError
		}

		ctx := context.Background()
		if err := config.Connect(ctx, strings.ToLower(*driver), *dsn); err != nil {
			fmt.Fprintf(stderr, "Seed failed: %v\n", err)
			return ExitError
		}
		repo := page.NewGormRepository(config.DB)
		if err := repo.Migrate(); err != nil {
			fmt.Fprintf(stderr, "Seed failed: migrate: %v\n", err)
			return ExitError
		}
		res, err := repo.Seed(ctx, lib)
		if err != nil {
			fmt.Fprintf(stderr, "Seed failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Seeded %d course(s), %d page(s), %d bank(s)\n", res.Courses, res.Pages, res.Banks)
		return ExitOK
	}
}
