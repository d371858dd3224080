//go:build gmp

// The GMP calculator requires libgmp and is compiled only with -tags=gmp.

package product

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/rangeprod/internal/logging"
	"github.com/agbru/rangeprod/internal/progress"
)

func init() {
	_ = registerCalculator("gmp", func(logging.Logger) coreCalculator { return &gmpCalculator{} })
}

// gmpCalculator multiplies the plan's coverage exactly with GMP on a single
// goroutine.
type gmpCalculator struct{}

func (c *gmpCalculator) Name() string { return "GMP (sequential)" }
func (c *gmpCalculator) Exact() bool  { return true }

func (c *gmpCalculator) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, req Request) (*big.Int, error) {
	iv, err := Coverage(req.Threads, req.Start, req.End, req.Policy)
	if err != nil {
		return nil, err
	}
	tracker := newProgressTracker([]Interval{iv}, reporter)

	acc := gmp.NewInt(1)
	factor := gmp.NewInt(0)
	var pending uint64
	for i := iv.Lo; i < iv.Hi; i++ {
		if i == 0 {
			return big.NewInt(0), nil
		}
		factor.SetInt64(i)
		acc.Mul(acc, factor)
		pending++
		if pending == CancelCheckInterval {
			tracker.advance(pending)
			pending = 0
			if err := contextError(ctx); err != nil {
				return nil, err
			}
		}
	}
	tracker.advance(pending)
	return gmpToStdBigInt(acc)
}

func gmpToStdBigInt(g *gmp.Int) (*big.Int, error) {
	z, ok := new(big.Int).SetString(g.String(), 10)
	if !ok {
		return nil, fmt.Errorf("product: cannot convert GMP value %q", g.String())
	}
	return z, nil
}
