package product

//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

import (
	"context"
	"math/big"
	"time"

	"github.com/agbru/rangeprod/internal/logging"
	"github.com/agbru/rangeprod/internal/progress"
)

// Request describes one range product computation.
type Request struct {
	Threads int
	Start   int64
	End     int64
	Policy  Policy
}

// Calculator is the abstraction the orchestration layer runs. Implementations
// are safe for concurrent use.
type Calculator interface {
	// Calculate computes the range product described by req. Progress updates
	// tagged with calcIndex are sent on progressChan without blocking; a nil
	// channel disables reporting.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, req Request) (*big.Int, error)

	// Name returns the display name of the calculator.
	Name() string

	// Exact reports whether results are exact integers rather than values
	// reduced modulo 2^64.
	Exact() bool
}

// coreCalculator is a bare algorithm, wrapped by RangeCalculator.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter progress.ProgressCallback, req Request) (*big.Int, error)
	Name() string
	Exact() bool
}

// RangeCalculator adapts a coreCalculator to the Calculator interface,
// translating the progress channel into a callback and logging the outcome.
type RangeCalculator struct {
	core      coreCalculator
	logger    logging.Logger
	observers []progress.ProgressObserver
}

// NewCalculator wraps core. It panics if core is nil.
func NewCalculator(core coreCalculator, logger logging.Logger) Calculator {
	if core == nil {
		panic("product: the coreCalculator implementation cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RangeCalculator{core: core, logger: logger}
}

// NewCalculatorWithObservers is like NewCalculator, and additionally
// notifies observers of every progress update of every calculation.
func NewCalculatorWithObservers(core coreCalculator, logger logging.Logger, observers ...progress.ProgressObserver) Calculator {
	c := NewCalculator(core, logger).(*RangeCalculator)
	c.observers = observers
	return c
}

// Name delegates to the wrapped calculator.
func (c *RangeCalculator) Name() string { return c.core.Name() }

// Exact delegates to the wrapped calculator.
func (c *RangeCalculator) Exact() bool { return c.core.Exact() }

// Calculate implements Calculator.
func (c *RangeCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, req Request) (*big.Int, error) {
	subject := progress.NewProgressSubject(c.observers...)
	if progressChan != nil {
		subject.Register(progress.NewChannelObserver(progressChan))
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, req)
}

// CalculateWithObservers is like Calculate but notifies the observers
// registered on subject. A nil subject disables progress reporting.
func (c *RangeCalculator) CalculateWithObservers(ctx context.Context, subject *progress.ProgressSubject, calcIndex int, req Request) (*big.Int, error) {
	start := time.Now()
	reporter := subject.AsCallback(calcIndex)

	result, err := c.core.CalculateCore(ctx, reporter, req)
	if err == nil {
		reporter(1.0)
	}

	fields := []logging.Field{
		logging.String("calculator", c.core.Name()),
		logging.Int("threads", req.Threads),
		logging.Int64("start", req.Start),
		logging.Int64("end", req.End),
		logging.Float64("seconds", time.Since(start).Seconds()),
	}
	if err != nil {
		c.logger.Debug("calculation failed", append(fields, logging.Err(err))...)
		return nil, err
	}
	c.logger.Debug("calculation completed", fields...)
	return result, nil
}

// parallelCalculator is the partitioned int64 reducer.
type parallelCalculator struct {
	logger logging.Logger
}

func (c *parallelCalculator) Name() string { return "Parallel (int64)" }
func (c *parallelCalculator) Exact() bool  { return false }

func (c *parallelCalculator) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, req Request) (*big.Int, error) {
	r := NewReducer(WithPolicy(req.Policy), WithLogger(c.logger), WithProgress(reporter))
	v, err := r.Compute(ctx, req.Threads, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	return big.NewInt(v), nil
}

// sequentialCalculator multiplies the plan's coverage on a single goroutine.
// It is the reference every parallel result must agree with.
type sequentialCalculator struct{}

func (c *sequentialCalculator) Name() string { return "Sequential (int64)" }
func (c *sequentialCalculator) Exact() bool  { return false }

func (c *sequentialCalculator) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, req Request) (*big.Int, error) {
	iv, err := Coverage(req.Threads, req.Start, req.End, req.Policy)
	if err != nil {
		return nil, err
	}
	tracker := newProgressTracker([]Interval{iv}, reporter)
	v, err := Product(ctx, iv, tracker.advance)
	if err != nil {
		return nil, err
	}
	return big.NewInt(v), nil
}

// exactCalculator is the partitioned reducer over math/big.
type exactCalculator struct {
	logger logging.Logger
}

func (c *exactCalculator) Name() string { return "Parallel (big.Int)" }
func (c *exactCalculator) Exact() bool  { return true }

func (c *exactCalculator) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, req Request) (*big.Int, error) {
	r := NewReducer(WithPolicy(req.Policy), WithLogger(c.logger), WithProgress(reporter))
	return r.ComputeBig(ctx, req.Threads, req.Start, req.End)
}

// Wrap64 reduces x modulo 2^64 and reinterprets the low 64 bits as a signed
// int64, the value the wraparound calculators produce for the same range.
func Wrap64(x *big.Int) int64 {
	low := new(big.Int).And(x, wrapMask)
	return int64(low.Uint64())
}

var wrapMask = new(big.Int).SetUint64(^uint64(0))
