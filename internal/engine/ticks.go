package engine

import "time"

// TickFunc receives the periodic elapsed-time republication for a
// running task. Read-only: the engine state is not touched by ticks.
type TickFunc func(taskID string, elapsedMs int64)

// tickHandle is a cancelable periodic notification keyed by task id.
type tickHandle struct {
	stop chan struct{}
	done chan struct{}
}

// armTick installs the display-refresh tick for a task. Any stale
// handle for the same id is canceled first so a task never has two
// concurrent tick loops.
func (e *Engine) armTick(id string, startedAt time.Time) {
	e.cancelTick(id)

	h := &tickHandle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	e.ticks[id] = h

	interval := e.interval
	onTick := e.onTick
	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case now := <-ticker.C:
				if onTick != nil {
					onTick(id, now.Sub(startedAt).Milliseconds())
				}
			}
		}
	}()
}

// cancelTick stops the tick for a task and waits for its loop to
// exit, so no notification can fire against a stopped or deleted
// task.
func (e *Engine) cancelTick(id string) {
	h, ok := e.ticks[id]
	if !ok {
		return
	}
	close(h.stop)
	<-h.done
	delete(e.ticks, id)
}
