package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/rangeprod/internal/errors"
	"github.com/agbru/rangeprod/internal/product"
	"github.com/agbru/rangeprod/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per calculator so a
// slow display rarely causes dropped updates.
const ProgressBufferMultiplier = 5

// ExecuteCalculations runs every calculator concurrently on req and returns
// their results in calculator order. It blocks until all calculators and the
// progress reporter are done. Calculator failures are recorded in the
// results, they do not stop the other calculators.
func ExecuteCalculations(ctx context.Context, calculators []product.Calculator, req product.Request, reporter ProgressReporter, out io.Writer) []CalculationResult {
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan progress.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	var g errgroup.Group
	for i, calc := range calculators {
		i, calc := i, calc
		g.Go(func() error {
			start := time.Now()
			res, err := calc.Calculate(ctx, progressChan, i, req)
			if err != nil {
				res = nil
				err = apperrors.CalculationError{Calculator: calc.Name(), Cause: err}
			}
			results[i] = CalculationResult{
				Index:    i,
				Name:     calc.Name(),
				Exact:    calc.Exact(),
				Result:   res,
				Duration: time.Since(start),
				Err:      err,
			}
			return nil
		})
	}
	_ = g.Wait()

	close(progressChan)
	displayWg.Wait()
	return results
}

// CheckConsistency verifies that all successful results describe the same
// product: every result must agree modulo 2^64 and exact results must agree
// exactly. It returns nil when fewer than two results succeeded.
func CheckConsistency(results []CalculationResult) error {
	var ref, exactRef *CalculationResult
	for i := range results {
		r := &results[i]
		if r.Err != nil || r.Result == nil {
			continue
		}
		if ref == nil {
			ref = r
		} else if product.Wrap64(r.Result) != product.Wrap64(ref.Result) {
			return fmt.Errorf("%s and %s disagree modulo 2^64: %d != %d",
				ref.Name, r.Name, product.Wrap64(ref.Result), product.Wrap64(r.Result))
		}
		if !r.Exact {
			continue
		}
		if exactRef == nil {
			exactRef = r
		} else if r.Result.Cmp(exactRef.Result) != 0 {
			return fmt.Errorf("exact results of %s and %s disagree", exactRef.Name, r.Name)
		}
	}
	return nil
}

// Representative picks the result to display: the lowest-index successful
// int64 result, or the lowest-index successful exact one when no int64
// calculator succeeded. It returns nil when everything failed.
func Representative(results []CalculationResult) *CalculationResult {
	var exact *CalculationResult
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if !r.Exact {
			return r
		}
		if exact == nil {
			exact = r
		}
	}
	return exact
}

// AnalyzeComparisonResults reports the outcome of a run and returns the exit
// code. With several calculators it prints a comparison table sorted by
// duration and cross-checks the results; a disagreement yields
// ExitErrorMismatch.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	if len(results) == 0 {
		fmt.Fprintln(out, "No calculator was run.")
		return apperrors.ExitErrorGeneric
	}

	if len(results) > 1 && !opts.Quiet {
		sorted := slices.Clone(results)
		slices.SortStableFunc(sorted, func(a, b CalculationResult) int {
			if (a.Err == nil) != (b.Err == nil) {
				if a.Err == nil {
					return -1
				}
				return 1
			}
			return cmp.Compare(a.Duration, b.Duration)
		})
		presenter.PresentComparisonTable(sorted, out)
	}

	best := Representative(results)
	if best == nil {
		first := results[0]
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No calculator could complete the computation.\n")
		}
		return presenter.HandleError(first.Err, first.Duration, out)
	}

	if err := CheckConsistency(results); err != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Inconsistent results: %v\n", err)
		return apperrors.ExitErrorMismatch
	}
	if len(results) > 1 && !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}

	presenter.PresentResult(*best, opts, out)
	return apperrors.ExitSuccess
}
