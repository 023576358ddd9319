package arena

import "LockOnArena/internal/targeting"

// TimerQueue is the room's one-shot callback facility, driven by simulation
// time rather than wall clock. Callbacks fire inside Tick, never concurrently
// with an evaluation.
type TimerQueue struct {
	now     float64
	nextSeq int64
	pending []*roomTimer
}

type roomTimer struct {
	at        float64
	seq       int64
	fn        func()
	cancelled bool
	fired     bool
}

func (t *roomTimer) Cancel() { t.cancelled = true }

func NewTimerQueue() *TimerQueue { return &TimerQueue{} }

func (q *TimerQueue) Now() float64 { return q.now }

// Schedule registers fn to run delay seconds of simulation time from now.
func (q *TimerQueue) Schedule(delay float64, fn func()) targeting.TimerHandle {
	q.nextSeq++
	t := &roomTimer{at: q.now + delay, seq: q.nextSeq, fn: fn}
	q.pending = append(q.pending, t)
	return t
}

// AdvanceTo moves simulation time forward and fires every due timer in
// (deadline, sequence) order. Cancelled timers are dropped silently.
func (q *TimerQueue) AdvanceTo(now float64) {
	q.now = now
	for {
		idx := -1
		for i, t := range q.pending {
			if t.cancelled || t.fired || t.at > now {
				continue
			}
			if idx < 0 || t.at < q.pending[idx].at ||
				(t.at == q.pending[idx].at && t.seq < q.pending[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		t := q.pending[idx]
		t.fired = true
		t.fn()
	}
	q.compact()
}

func (q *TimerQueue) compact() {
	kept := q.pending[:0]
	for _, t := range q.pending {
		if !t.cancelled && !t.fired {
			kept = append(kept, t)
		}
	}
	q.pending = kept
}
