// ABOUTME: Clock synchronization: translates the server loop clock to local instants
// ABOUTME: Implements epoch pinning, not exponential smoothing, per the Sendspin original
package sync

import (
	"sync/atomic"
	"time"
)

// Quality classifies how trustworthy the current clock sync is.
type Quality string

const (
	QualityGood     Quality = "good"
	QualityDegraded Quality = "degraded"
	QualityLost     Quality = "lost"
)

const (
	// maxAcceptableRTTMicros is the discard threshold; samples above this
	// are presumed congested and must not move the epoch.
	maxAcceptableRTTMicros int64 = 100_000
	// goodRTTMicros is the good/degraded boundary.
	goodRTTMicros int64 = 50_000
	// staleAfter marks a clock lost if no sample has landed in this long.
	staleAfter = 5 * time.Second
)

// ClockState is an immutable snapshot of the clock's sync status. A new
// snapshot is produced on every Update call and swapped in atomically;
// readers never observe a torn update.
type ClockState struct {
	RTTMicros                 *int64
	ServerLoopEpochWallMicros *int64
	LastUpdate                time.Time
	Synced                    bool
}

// Clock estimates the offset between the server's free-running loop clock
// and the client's wall clock from bidirectional timestamp exchanges, and
// translates server-loop instants into local deadlines.
//
// ServerLoopEpochWallMicros is pinned on the first accepted sample and
// never recomputed for the lifetime of the Clock: the server loop started
// at one specific wallclock moment, and later jitter would only degrade
// that point estimate, not improve it.
type Clock struct {
	state    atomic.Pointer[ClockState]
	nowWall  func() int64
	nowLocal func() time.Time
}

// New returns a Clock with no accepted samples yet.
func New() *Clock {
	c := &Clock{nowWall: nowWallMicros, nowLocal: time.Now}
	c.state.Store(&ClockState{})
	return c
}

func nowWallMicros() int64 {
	return time.Now().UnixMicro()
}

// Update feeds one four-timestamp exchange: t1 client-transmitted wallclock
// µs, t2 server-received loop µs, t3 server-transmitted loop µs, t4
// client-received wallclock µs.
func (c *Clock) Update(t1, t2, t3, t4 int64) {
	rtt := (t4 - t1) - (t3 - t2)
	prev := c.state.Load()

	if rtt > maxAcceptableRTTMicros {
		next := *prev
		next.RTTMicros = &rtt
		c.state.Store(&next)
		return
	}

	next := *prev
	next.RTTMicros = &rtt
	next.LastUpdate = c.nowLocal()

	if !prev.Synced {
		epoch := c.nowWall() - t2
		next.ServerLoopEpochWallMicros = &epoch
		next.Synced = true
	}

	c.state.Store(&next)
}

// Snapshot returns the current immutable clock state.
func (c *Clock) Snapshot() ClockState {
	return *c.state.Load()
}

// ServerToLocal translates a server-loop microsecond timestamp into a local
// instant, or false if the clock has never synced.
func (c *Clock) ServerToLocal(serverLoopMicros int64) (time.Time, bool) {
	s := c.state.Load()
	if s.ServerLoopEpochWallMicros == nil {
		return time.Time{}, false
	}
	unixMicros := *s.ServerLoopEpochWallMicros + serverLoopMicros
	deltaMicros := unixMicros - c.nowWall()
	return c.nowLocal().Add(time.Duration(deltaMicros) * time.Microsecond), true
}

// Quality reports good/degraded/lost per the RTT and staleness thresholds.
func (c *Clock) Quality() Quality {
	s := c.state.Load()
	if !s.Synced || s.RTTMicros == nil {
		return QualityLost
	}
	if s.LastUpdate.IsZero() || c.nowLocal().Sub(s.LastUpdate) > staleAfter {
		return QualityLost
	}
	switch {
	case *s.RTTMicros < goodRTTMicros:
		return QualityGood
	case *s.RTTMicros <= maxAcceptableRTTMicros:
		return QualityDegraded
	default:
		return QualityLost
	}
}
