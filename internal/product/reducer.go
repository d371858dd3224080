package product

import (
	"context"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/rangeprod/internal/errors"
	"github.com/agbru/rangeprod/internal/logging"
	"github.com/agbru/rangeprod/internal/progress"
)

const tracerName = "github.com/agbru/rangeprod/internal/product"

// Reducer partitions a range, multiplies every partition on its own
// goroutine and folds the partial products in partition order.
//
// A Reducer holds only configuration and may be shared by concurrent callers.
type Reducer struct {
	policy   Policy
	logger   logging.Logger
	progress progress.ProgressCallback
}

// ReducerOption configures a Reducer.
type ReducerOption func(*Reducer)

// WithPolicy sets the partition policy (PolicyClamp by default).
func WithPolicy(p Policy) ReducerOption {
	return func(r *Reducer) { r.policy = p }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logging.Logger) ReducerOption {
	return func(r *Reducer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithProgress sets the callback receiving normalized progress values. It is
// called from worker goroutines and must be safe for concurrent use.
func WithProgress(cb progress.ProgressCallback) ReducerOption {
	return func(r *Reducer) { r.progress = cb }
}

// NewReducer creates a Reducer.
func NewReducer(opts ...ReducerOption) *Reducer {
	r := &Reducer{policy: PolicyClamp, logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the partition policy.
func (r *Reducer) Policy() Policy { return r.policy }

// Compute returns the product of the integers covered by the partition of
// [start, end) into threadCount intervals, using int64 wraparound
// arithmetic.
//
// All workers are started before Compute blocks, and Compute returns only
// after every one of them has exited, on success and on failure alike. If a
// worker fails (the context is cancelled or its deadline passes) the
// remaining workers are cancelled and Compute returns a CalculationError; no
// partial product is returned.
func (r *Reducer) Compute(ctx context.Context, threadCount int, start, end int64) (int64, error) {
	return reduce(ctx, r, "int64", threadCount, start, end, Product,
		func(acc, x int64) int64 { return acc * x }, 1)
}

// ComputeBig is the exact counterpart of Compute, using math/big.
func (r *Reducer) ComputeBig(ctx context.Context, threadCount int, start, end int64) (*big.Int, error) {
	return reduce(ctx, r, "big", threadCount, start, end, ProductBig,
		func(acc, x *big.Int) *big.Int { return acc.Mul(acc, x) }, big.NewInt(1))
}

// Compute runs a default (clamping) Reducer.
func Compute(ctx context.Context, threadCount int, start, end int64) (int64, error) {
	return NewReducer().Compute(ctx, threadCount, start, end)
}

// workFunc multiplies out one interval.
type workFunc[T any] func(ctx context.Context, iv Interval, tick TickFunc) (T, error)

// reduce is the partition/compute/join pattern shared by every arithmetic.
// acc must be the multiplicative identity; it becomes the result.
func reduce[T any](ctx context.Context, r *Reducer, arithmetic string, threadCount int, start, end int64,
	work workFunc[T], fold func(acc, x T) T, acc T) (result T, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "product.Reduce")
	defer span.End()
	span.SetAttributes(
		attribute.String("rangeprod.arithmetic", arithmetic),
		attribute.String("rangeprod.policy", r.policy.String()),
		attribute.Int("rangeprod.threads", threadCount),
		attribute.Int64("rangeprod.start", start),
		attribute.Int64("rangeprod.end", end),
	)

	began := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		computationsTotal.WithLabelValues(arithmetic, r.policy.String(), status).Inc()
		computationDuration.WithLabelValues(arithmetic).Observe(time.Since(began).Seconds())
	}()

	plan, err := Partition(threadCount, start, end, r.policy)
	if err != nil {
		var zero T
		return zero, err
	}
	r.logger.Debug("partition planned",
		logging.String("arithmetic", arithmetic),
		logging.String("policy", r.policy.String()),
		logging.Int("threads", threadCount),
		logging.Int64("chunk", ChunkSize(threadCount, start, end)),
		logging.String("first", plan[0].String()),
		logging.String("last", plan[len(plan)-1].String()),
	)

	tracker := newProgressTracker(plan, r.progress)
	partials := make([]T, len(plan))

	g, gctx := errgroup.WithContext(ctx)
	for i, iv := range plan {
		i, iv := i, iv
		g.Go(func() error {
			activeWorkers.Inc()
			defer activeWorkers.Dec()
			workerStart := time.Now()
			partial, err := work(gctx, iv, tracker.advance)
			workerDuration.WithLabelValues(arithmetic).Observe(time.Since(workerStart).Seconds())
			if err != nil {
				return apperrors.WrapError(err, "worker %d %s", i, iv)
			}
			partials[i] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if apperrors.IsContextError(err) {
			r.logger.Debug("computation aborted", logging.Err(err), logging.String("arithmetic", arithmetic))
		} else {
			r.logger.Error("computation failed", err, logging.String("arithmetic", arithmetic))
		}
		var zero T
		return zero, apperrors.CalculationError{Cause: err}
	}

	for _, p := range partials {
		acc = fold(acc, p)
	}
	tracker.finish()
	r.logger.Debug("computation completed",
		logging.String("arithmetic", arithmetic),
		logging.Float64("seconds", time.Since(began).Seconds()),
	)
	return acc, nil
}
