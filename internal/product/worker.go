package product

import (
	"context"
	"errors"
	"math/big"
)

// CancelCheckInterval is the number of factors a worker multiplies between
// two context checks. The same batch size is used for progress ticks.
const CancelCheckInterval = 1 << 14

// TickFunc receives the number of integers a worker has just processed.
type TickFunc func(n uint64)

// Product returns lo*(lo+1)*...*(hi-1) for iv using int64 two's-complement
// arithmetic, or 1 when iv is empty. Overflow wraps silently.
//
// The context is checked before starting and every CancelCheckInterval
// factors; a cancelled context aborts with contextError(ctx). tick, if
// non-nil, is called with the number of integers processed since the
// previous call, and the calls add up to iv.Len() on success.
func Product(ctx context.Context, iv Interval, tick TickFunc) (int64, error) {
	if err := contextError(ctx); err != nil {
		return 0, err
	}

	result := int64(1)
	var pending uint64
	for i := iv.Lo; i < iv.Hi; i++ {
		result *= i
		pending++
		// Zero is absorbing, including after wraparound.
		if result == 0 {
			pending += uint64(iv.Hi) - uint64(i) - 1
			break
		}
		if pending == CancelCheckInterval {
			if err := contextError(ctx); err != nil {
				return 0, err
			}
			if tick != nil {
				tick(pending)
			}
			pending = 0
		}
	}
	if tick != nil && pending > 0 {
		tick(pending)
	}
	return result, nil
}

// ProductBig returns the exact product of the integers in iv, or 1 when iv
// is empty. It multiplies blocks of CancelCheckInterval factors with
// big.Int.MulRange and checks the context between blocks.
func ProductBig(ctx context.Context, iv Interval, tick TickFunc) (*big.Int, error) {
	if err := contextError(ctx); err != nil {
		return nil, err
	}

	result := big.NewInt(1)
	block := new(big.Int)
	for lo := iv.Lo; lo < iv.Hi; {
		hi := iv.Hi
		if uint64(hi)-uint64(lo) > CancelCheckInterval {
			hi = lo + CancelCheckInterval
		}
		// MulRange bounds are inclusive.
		result.Mul(result, block.MulRange(lo, hi-1))
		if tick != nil {
			tick(uint64(hi) - uint64(lo))
		}
		if result.Sign() == 0 {
			if tick != nil && iv.Hi > hi {
				tick(uint64(iv.Hi) - uint64(hi))
			}
			break
		}
		lo = hi
		if lo < iv.Hi {
			if err := contextError(ctx); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// contextError returns nil while ctx is live. Once it is done it returns the
// cancellation cause if that cause still matches ctx.Err(), and ctx.Err()
// otherwise, so callers can rely on errors.Is against the context sentinels.
func contextError(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if cause := context.Cause(ctx); cause != nil && errors.Is(cause, err) {
		return cause
	}
	return err
}
