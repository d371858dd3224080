package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/agbru/rangeprod/internal/config"
	apperrors "github.com/agbru/rangeprod/internal/errors"
)

// RangeInput holds the three integers read in prompt mode.
type RangeInput struct {
	Threads int
	Start   int64
	End     int64
}

// PromptRange prints "Thread count: ", "Start number: " and "End number: "
// to out and reads one whitespace-separated integer from in after each.
// Values may be given on separate lines or together on one line.
func PromptRange(in io.Reader, out io.Writer) (RangeInput, error) {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)

	next := func(prompt, field string) (string, error) {
		fmt.Fprint(out, prompt)
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", apperrors.WrapError(err, "reading %s", field)
		}
		return "", apperrors.NewValidationError(field, "no value provided")
	}

	var r RangeInput
	tok, err := next("Thread count: ", "threads")
	if err != nil {
		return r, err
	}
	if r.Threads, err = config.ParseThreads(tok); err != nil {
		return r, err
	}
	if tok, err = next("Start number: ", "start"); err != nil {
		return r, err
	}
	if r.Start, err = config.ParseBound("start", tok); err != nil {
		return r, err
	}
	if tok, err = next("End number: ", "end"); err != nil {
		return r, err
	}
	if r.End, err = config.ParseBound("end", tok); err != nil {
		return r, err
	}
	return r, nil
}
