package tracking

import (
	"time"

	"backend-passiverdi/internal/activity"
	"backend-passiverdi/internal/transport"
)

// Recorder serializes the two asynchronous sensor feeds of one session into a
// single ordered queue consumed by one goroutine. This queue is the only
// synchronization point in the engine: the Session behind it is never touched
// concurrently.
type Recorder struct {
	session *Session
	coeffs  transport.Coefficients
	events  chan event
	done    chan struct{}
}

type event struct {
	position *PositionSample
	motion   *MotionHint
	summary  chan Summary
	stop     chan *activity.Activity
	stopTime time.Time
}

func NewRecorder(session *Session, coeffs transport.Coefficients) *Recorder {
	r := &Recorder{
		session: session,
		coeffs:  coeffs,
		events:  make(chan event, 64),
		done:    make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Recorder) loop() {
	for ev := range r.events {
		switch {
		case ev.position != nil:
			r.session.AddPosition(*ev.position)
		case ev.motion != nil:
			r.session.AddMotion(*ev.motion)
		case ev.summary != nil:
			ev.summary <- r.session.Summary()
		case ev.stop != nil:
			ev.stop <- r.session.Finalize(r.coeffs, ev.stopTime)
			close(r.done)
			return
		}
	}
}

// OnPosition pushes a fix onto the session queue. Safe after Stop: late
// samples are dropped.
func (r *Recorder) OnPosition(p PositionSample) {
	select {
	case <-r.done:
	case r.events <- event{position: &p}:
	}
}

// OnMotionHint pushes a motion hint onto the session queue.
func (r *Recorder) OnMotionHint(h MotionHint) {
	select {
	case <-r.done:
	case r.events <- event{motion: &h}:
	}
}

// Summary returns a snapshot of the live session, or the zero Summary after
// Stop.
func (r *Recorder) Summary() Summary {
	reply := make(chan Summary, 1)
	select {
	case <-r.done:
		return Summary{}
	case r.events <- event{summary: reply}:
		select {
		case s := <-reply:
			return s
		case <-r.done:
			// a stop raced ahead of this snapshot in the queue
			select {
			case s := <-reply:
				return s
			default:
				return Summary{}
			}
		}
	}
}

// Stop finalizes the session on whatever state is present. Safe to call at
// any time, including twice; the second call returns nil.
func (r *Recorder) Stop(now time.Time) *activity.Activity {
	reply := make(chan *activity.Activity, 1)
	select {
	case <-r.done:
		return nil
	case r.events <- event{stop: reply, stopTime: now}:
		select {
		case act := <-reply:
			return act
		case <-r.done:
			// replies are sent before done closes, so a processed stop
			// always has its result buffered here
			select {
			case act := <-reply:
				return act
			default:
				return nil
			}
		}
	}
}
