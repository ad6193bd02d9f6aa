package prime

import (
	"context"
	"math/big"
	"sync"

	"github.com/vaultsandbox/rsa-go/internal/errs"
	"github.com/vaultsandbox/rsa-go/internal/randnum"
	"github.com/vaultsandbox/rsa-go/logging"
)

// GetParallel races poolSize searches for an nbits-bit prime and returns the
// first prime found. The remaining searches are cancelled and GetParallel
// waits for all of them to exit before it returns.
//
// Which search wins is unspecified. Racing only shortens wall-clock time; the
// distribution of the result is that of [Generator.Get].
//
// A search that panics or loses its random source drops out of the race. If
// every search drops out, GetParallel blocks until ctx is done. Bound the
// call with a context deadline when latency matters.
//
// g.Rand, when set, must be safe for concurrent use.
func (g *Generator) GetParallel(ctx context.Context, nbits, poolSize int) (*big.Int, error) {
	if err := checkBits(nbits); err != nil {
		return nil, err
	}
	if poolSize < 1 {
		return nil, errs.Invalid("pool size must be at least 1, got %d", poolSize)
	}

	ctx, cancel := context.WithCancel(ctx)
	found := make(chan *big.Int, 1)
	wg := &sync.WaitGroup{}
	defer func() {
		cancel()
		wg.Wait()
		close(found)
	}()

	wg.Add(poolSize)
	for i := 0; i < poolSize; i++ {
		go g.search(ctx, wg, i, nbits, found)
	}

	select {
	case p := <-found:
		return p, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GetParallel races poolSize searches using the DefaultGenerator.
func GetParallel(ctx context.Context, nbits, poolSize int) (*big.Int, error) {
	return DefaultGenerator.GetParallel(ctx, nbits, poolSize)
}

func (g *Generator) search(ctx context.Context, wg *sync.WaitGroup, worker, nbits int, found chan<- *big.Int) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logging.Logger().Debug("prime search crashed", "worker", worker, "panic", r)
		}
	}()

	tester := g.tester()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		candidate, err := randnum.ReadRandomOddInt(g.Rand, nbits)
		if err != nil {
			logging.Logger().Debug("prime search stopped", "worker", worker, "error", err)
			return
		}
		if !tester.IsPrime(candidate) {
			continue
		}

		// One result is enough; later finds are dropped.
		select {
		case found <- candidate:
			logging.Logger().Debug("prime search won", "worker", worker, "bits", nbits)
		default:
		}
		return
	}
}
