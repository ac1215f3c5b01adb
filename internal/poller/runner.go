// internal/poller/runner.go
package poller

import (
	"context"
	"sync"
)

// Run polls once immediately, then on every tick, and emits each PollResult
// on out. Each poll runs in its own goroutine so a slow response never
// delays the next tick; results can therefore arrive out of Seq order.
// Run returns after ctx is done and every in-flight poll has finished.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	var wg sync.WaitGroup
	defer wg.Wait()

	poll := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := p.PollOnce(ctx)
			select {
			case out <- res:
			case <-ctx.Done():
			}
		}()
	}

	poll()

	ticker := p.cfg.Clock.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			poll()
		}
	}
}
