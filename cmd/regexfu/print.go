package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/kk-code-lab/regexfu/internal/match"
	"github.com/kk-code-lab/regexfu/internal/session"
	"github.com/kk-code-lab/regexfu/internal/textbuf"
	"github.com/sirupsen/logrus"
)

// printMatches runs pattern over subject until the matches run out and
// writes the result transcript to stdout.
func printMatches(stdout, stderr io.Writer, engine match.Engine, flags match.Flags, pattern, subject string, logger logrus.FieldLogger) int {
	result := textbuf.New()
	sess := session.New(textbuf.NewString(pattern), textbuf.NewString(subject), result, session.Options{
		Engine: engine,
		Flags:  flags,
		Logger: logger,
	})

	if err := sess.OnSubmit(); err != nil {
		var compileErr *match.CompileError
		if errors.As(err, &compileErr) {
			fmt.Fprintln(stdout, result.Text())
			return 1
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	for sess.CanNext() {
		if _, err := sess.OnNext(); err != nil {
			if errors.Is(err, match.ErrExhausted) {
				break
			}
			fmt.Fprintln(stdout, result.Text())
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	fmt.Fprintln(stdout, result.Text())
	return 0
}
