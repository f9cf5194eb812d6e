package websocket

import (
	"sync"
	"time"

	"github.com/DanielEkerhovd/teamcomp.lol-sub003/internal/domain"
)

// TimerManager arms one deadline per draft step and broadcasts ticks. Expiry
// is delivered together with the step index it was armed for; the room loop
// discards signals whose step has already advanced, so a late or duplicate
// expiry is harmless.
type TimerManager struct {
	banMs  int
	pickMs int

	timer      *time.Timer
	startedAt  time.Time
	durationMs int
	tickerStop chan struct{}

	onExpired func(stepIndex int)
	emitter   *EventEmitter

	mu sync.RWMutex
}

func NewTimerManager(banSeconds, pickSeconds int, emitter *EventEmitter, onExpired func(stepIndex int)) *TimerManager {
	return &TimerManager{
		banMs:     banSeconds * 1000,
		pickMs:    pickSeconds * 1000,
		emitter:   emitter,
		onExpired: onExpired,
	}
}

// DurationMs returns the configured duration for a step of the given kind.
func (tm *TimerManager) DurationMs(kind domain.ActionKind) int {
	if kind == domain.ActionBan {
		return tm.banMs
	}
	return tm.pickMs
}

// Start arms the deadline for stepIndex, replacing any previous timer.
func (tm *TimerManager) Start(stepIndex int, kind domain.ActionKind) {
	tm.Stop()

	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.durationMs = tm.DurationMs(kind)
	tm.startedAt = time.Now()

	armed := stepIndex
	tm.timer = time.AfterFunc(time.Duration(tm.durationMs)*time.Millisecond, func() {
		tm.onExpired(armed)
	})

	tm.tickerStop = make(chan struct{})
	go tm.runTicker(tm.tickerStop)
}

// Stop disarms the deadline and halts the ticker.
func (tm *TimerManager) Stop() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.timer != nil {
		tm.timer.Stop()
		tm.timer = nil
	}
	if tm.tickerStop != nil {
		close(tm.tickerStop)
		tm.tickerStop = nil
	}
}

// Remaining returns the milliseconds left on the armed deadline.
func (tm *TimerManager) Remaining() int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	if tm.timer == nil {
		return 0
	}
	remaining := tm.durationMs - int(time.Since(tm.startedAt).Milliseconds())
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// runTicker broadcasts a tick every second until stopped or expired.
func (tm *TimerManager) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining := tm.Remaining()
			tm.emitter.TimerTick(remaining)
			if remaining <= 0 {
				return
			}
		}
	}
}
