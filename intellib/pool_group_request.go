package intellib

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

type lookupRequest struct {
	ctx           context.Context
	target        string
	index         int
	resultChannel chan<- lookupResponse
	wg            *sync.WaitGroup
}

type lookupResponse struct {
	index  int
	result LookupResult
}

type poolGroupRequest struct {
	ctx           context.Context
	cancel        context.CancelFunc
	resultChannel chan<- lookupResponse
	wg            *sync.WaitGroup
	pool          *ants.PoolWithFunc
}

func (p *poolGroupRequest) Do(ctx context.Context, target string, index int) error {
	select {
	case <-ctx.Done():
		return ErrContextIsClosed
	case <-p.ctx.Done():
		return ErrContextIsClosed
	default:
	}

	p.wg.Add(1)

	req := &lookupRequest{
		ctx:           p.ctx,
		target:        target,
		index:         index,
		resultChannel: p.resultChannel,
		wg:            p.wg,
	}

	if err := p.pool.Invoke(req); err != nil {
		p.wg.Done()
		p.cancel()

		return fmt.Errorf("cannot schedule a task: %w", err)
	}

	return nil
}

func newPoolGroupRequest(ctx context.Context,
	resultChannel chan<- lookupResponse,
	wg *sync.WaitGroup,
	pool *ants.PoolWithFunc) *poolGroupRequest {
	ctx, cancel := context.WithCancel(ctx)

	return &poolGroupRequest{
		ctx:           ctx,
		wg:            wg,
		resultChannel: resultChannel,
		cancel:        cancel,
		pool:          pool,
	}
}
