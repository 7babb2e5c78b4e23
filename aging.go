package agepool

import (
	"time"
)

// monitor is the background aging pass. On every tick it takes the
// pool lock, recomputes the effective priority of all resident tasks,
// rebuilds the heap if any ordering changed, and then wakes all
// workers unconditionally — a woken worker re-checks the store
// cheaply and re-parks if it is still empty.
//
// The monitor never removes or executes tasks; it strictly relabels.
// It observes the stop channel at the top of each wait and exits
// without a final aging pass.
func (p *Pool[T]) monitor() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.opts.AgingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.mu.Lock()
			p.queue.age(time.Now())
			age := p.queue.oldest()
			p.mu.Unlock()

			if age > 0 {
				p.metrics.SetMaxAge(age)
			}
			p.cond.Broadcast()
		}
	}
}
