// internal/poller/mount.go
package poller

import "context"

// Instance is one mounted poller feeding an apply callback.
type Instance struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Mount starts polling and hands every result to apply, serially.
// apply is never called after Unmount returns.
func Mount(ctx context.Context, p *Poller, apply func(PollResult)) *Instance {
	ctx, cancel := context.WithCancel(ctx)
	inst := &Instance{cancel: cancel, done: make(chan struct{})}

	out := make(chan PollResult)
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		p.Run(ctx, out)
	}()

	go func() {
		defer close(inst.done)
		for {
			select {
			case res := <-out:
				if ctx.Err() != nil {
					continue
				}
				apply(res)
			case <-runDone:
				return
			}
		}
	}()

	return inst
}

// Unmount stops the interval, cancels in-flight requests and waits until
// nothing can call apply anymore.
func (i *Instance) Unmount() {
	i.cancel()
	<-i.done
}

// Done is closed once the instance has fully stopped.
func (i *Instance) Done() <-chan struct{} { return i.done }
