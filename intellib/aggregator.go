package intellib

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	DefaultWorkerPoolSize = 4096

	// DefaultLookupTimeout is a per-provider time budget for one call.
	DefaultLookupTimeout = 5 * time.Second

	workerPoolExpireTime = time.Minute
)

// Aggregator fans one lookup out to every configured provider
// concurrently and collects a complete, ordered result set: one entry
// per provider, in registry order, regardless of which providers fail
// and in which order they finish. Total latency of a lookup is bounded
// by the per-provider budget, not by the sum of provider latencies.
//
// Aggregator holds no mutable per-lookup state, so any number of
// lookups may run concurrently.
type Aggregator struct {
	logger     Logger
	providers  []Provider
	timeout    time.Duration
	rwmutex    sync.RWMutex
	closeOnce  sync.Once
	workerPool *ants.PoolWithFunc
	closed     bool
}

// ProviderNames returns provider names in registry order.
func (a *Aggregator) ProviderNames() []string {
	rv := make([]string, len(a.providers))

	for i, v := range a.providers {
		rv[i] = v.Name()
	}

	return rv
}

// Lookup queries every provider for the given target. An empty target
// asks the providers about the caller itself.
func (a *Aggregator) Lookup(ctx context.Context, target string) (LookupResult, error) {
	a.rwmutex.RLock()
	defer a.rwmutex.RUnlock()

	rv := LookupResult{
		Target: targetLabel(target),
	}

	if a.closed {
		return rv, ErrAggregatorShutdown
	}

	resultChannel := make(chan lookupResponse, 1)
	wg := &sync.WaitGroup{}
	groupRequest := newPoolGroupRequest(ctx, resultChannel, wg, a.workerPool)

	if err := groupRequest.Do(ctx, target, 0); err != nil {
		return rv, err
	}

	select {
	case <-ctx.Done():
		return rv, ctx.Err()
	case resp := <-resultChannel:
		rv = resp.result
	}

	wg.Wait()
	close(resultChannel)

	return rv, nil
}

// LookupAll runs independent lookups for the given targets and returns
// results in input order.
func (a *Aggregator) LookupAll(ctx context.Context, targets []string) ([]LookupResult, error) {
	a.rwmutex.RLock()
	defer a.rwmutex.RUnlock()

	if a.closed {
		return nil, ErrAggregatorShutdown
	}

	resultChannel := make(chan lookupResponse, len(targets))
	rv := make([]LookupResult, len(targets))
	wg := &sync.WaitGroup{}
	groupRequest := newPoolGroupRequest(ctx, resultChannel, wg, a.workerPool)

	scheduled := 0

	for i, v := range targets {
		if err := groupRequest.Do(ctx, v, i); err != nil {
			break
		}

		scheduled++
	}

	go func() {
		wg.Wait()
		close(resultChannel)
	}()

	for i := 0; i < scheduled; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case resp := <-resultChannel:
			rv[resp.index] = resp.result
		}
	}

	if scheduled != len(targets) {
		return nil, ErrContextIsClosed
	}

	return rv, nil
}

func (a *Aggregator) Shutdown() {
	a.rwmutex.Lock()
	defer a.rwmutex.Unlock()

	a.closed = true

	a.closeOnce.Do(func() {
		a.workerPool.Release()
	})
}

func (a *Aggregator) lookupFanOut(args interface{}) {
	params := args.(*lookupRequest)
	defer params.wg.Done()

	results := make([]ProviderResult, len(a.providers))
	wg := &sync.WaitGroup{}

	wg.Add(len(a.providers))

	for i, v := range a.providers {
		go a.lookupProvider(params.ctx, params.target, v, &results[i], wg)
	}

	wg.Wait()

	resp := lookupResponse{
		index: params.index,
		result: LookupResult{
			Target:    targetLabel(params.target),
			Providers: results,
			Consensus: calculateConsensus(results),
		},
	}

	select {
	case <-params.ctx.Done():
	case params.resultChannel <- resp:
	}
}

func (a *Aggregator) lookupProvider(ctx context.Context,
	target string,
	provider Provider,
	out *ProviderResult,
	wg *sync.WaitGroup) {
	defer wg.Done()

	out.Provider = provider.Name()

	if !provider.Enabled() {
		out.ErrorKind = ErrorKindDisabled

		return
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := provider.Lookup(ctx, target)
	if err != nil {
		a.logger.LookupError(targetLabel(target), provider.Name(), err)

		out.ErrorKind = KindOf(err)

		return
	}

	out.OK = true
	out.Data = &res
}

func targetLabel(target string) string {
	if target == "" {
		return SelfTarget
	}

	return target
}

// NewAggregator creates a ready-to-use Aggregator. The given provider
// slice defines the registry enumeration order and is never mutated
// afterwards. Pass a non-positive lookupTimeout or workerPoolSize to
// get the defaults.
func NewAggregator(providers []Provider,
	logger Logger,
	lookupTimeout time.Duration,
	workerPoolSize int) (*Aggregator, error) {
	seenNames := map[string]struct{}{}

	for _, v := range providers {
		if _, ok := seenNames[v.Name()]; ok {
			return nil, fmt.Errorf("provider %s is duplicated", v.Name())
		}

		seenNames[v.Name()] = struct{}{}
	}

	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}

	if workerPoolSize <= 0 {
		workerPoolSize = DefaultWorkerPoolSize
	}

	rv := &Aggregator{
		logger:    logger,
		providers: providers,
		timeout:   lookupTimeout,
	}

	rv.workerPool, _ = ants.NewPoolWithFunc(workerPoolSize, rv.lookupFanOut,
		ants.WithExpiryDuration(workerPoolExpireTime))

	return rv, nil
}
