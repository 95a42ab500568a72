// ABOUTME: Tests for the clock synchronizer
// ABOUTME: Covers epoch pinning, RTT computation, and high-RTT discard
package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func fixedNowWall(v int64) func() int64 {
	return func() int64 { return v }
}

func TestRTTAndEpochPinning(t *testing.T) {
	c := New()
	c.nowWall = fixedNowWall(2_000_000)

	c.Update(1_000_000, 500_000, 500_010, 1_000_050)
	snap := c.Snapshot()
	require.NotNil(t, snap.RTTMicros)
	require.EqualValues(t, 40, *snap.RTTMicros)
	require.NotNil(t, snap.ServerLoopEpochWallMicros)
	require.EqualValues(t, 2_000_000-500_000, *snap.ServerLoopEpochWallMicros)
	require.True(t, snap.Synced)

	// A second sample with a different t2 must not move the pinned epoch.
	c.nowWall = fixedNowWall(3_000_000)
	c.Update(1_100_000, 600_000, 600_010, 1_100_050)
	snap2 := c.Snapshot()
	require.Equal(t, *snap.ServerLoopEpochWallMicros, *snap2.ServerLoopEpochWallMicros)
}

func TestHighRTTDiscard(t *testing.T) {
	c := New()
	c.nowWall = fixedNowWall(1_000_000)

	// (t4-t1) - (t3-t2) = 150_000
	c.Update(0, 0, 200_000, 350_000)
	snap := c.Snapshot()
	require.False(t, snap.Synced)
	require.Nil(t, snap.ServerLoopEpochWallMicros)
	require.Equal(t, QualityLost, c.Quality())
}

func TestQualityThresholds(t *testing.T) {
	c := New()
	c.nowWall = fixedNowWall(1_000_000)

	c.Update(0, 0, 0, 40_000) // rtt = 40_000 < 50_000
	require.Equal(t, QualityGood, c.Quality())

	c2 := New()
	c2.nowWall = fixedNowWall(1_000_000)
	c2.Update(0, 0, 0, 80_000) // rtt = 80_000
	require.Equal(t, QualityDegraded, c2.Quality())
}

func TestQualityLostWhenStale(t *testing.T) {
	c := New()
	c.nowWall = fixedNowWall(1_000_000)
	staleTime := time.Now().Add(-10 * time.Second)
	c.nowLocal = func() time.Time { return staleTime }
	c.Update(0, 0, 0, 1_000)
	c.nowLocal = time.Now
	require.Equal(t, QualityLost, c.Quality())
}

func TestServerToLocalTranslation(t *testing.T) {
	c := New()
	c.nowWall = fixedNowWall(10_000_000)
	fixedLocal := time.Unix(0, 0)
	c.nowLocal = func() time.Time { return fixedLocal }
	c.Update(0, 1_000_000, 1_000_000, 0)

	instant, ok := c.ServerToLocal(2_000_000)
	require.True(t, ok)
	// epoch = nowWall(10M) - t2(1M) = 9M; unix = 9M + 2M = 11M;
	// delta = 11M - nowWall(10M) = 1M us = 1s
	require.Equal(t, fixedLocal.Add(time.Second), instant)
}

func TestServerToLocalBeforeSyncIsFalse(t *testing.T) {
	c := New()
	_, ok := c.ServerToLocal(1_000_000)
	require.False(t, ok)
}

// TestEpochPinningProperty exercises the quantified invariant from §8: for
// every two successful updates within one session, server_loop_epoch_wall_µs
// is unchanged once set.
func TestEpochPinningProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := New()
		c.nowWall = fixedNowWall(rapid.Int64Range(0, 1<<40).Draw(rt, "wall0"))

		t1 := rapid.Int64Range(0, 1<<30).Draw(rt, "t1")
		t2 := rapid.Int64Range(0, 1<<30).Draw(rt, "t2")
		t3 := t2 + rapid.Int64Range(0, 1000).Draw(rt, "serverDelta")
		t4 := t1 + rapid.Int64Range(0, 1000).Draw(rt, "clientDelta")
		c.Update(t1, t2, t3, t4)

		snap := c.Snapshot()
		if !snap.Synced {
			return // first sample may have been a high-RTT draw; nothing pinned yet
		}
		pinned := *snap.ServerLoopEpochWallMicros

		n := rapid.IntRange(1, 5).Draw(rt, "numFollowups")
		for i := 0; i < n; i++ {
			c.nowWall = fixedNowWall(rapid.Int64Range(0, 1<<40).Draw(rt, "wallN"))
			nt1 := rapid.Int64Range(0, 1<<30).Draw(rt, "nt1")
			nt2 := rapid.Int64Range(0, 1<<30).Draw(rt, "nt2")
			nt3 := nt2 + rapid.Int64Range(0, 1000).Draw(rt, "nServerDelta")
			nt4 := nt1 + rapid.Int64Range(0, 1000).Draw(rt, "nClientDelta")
			c.Update(nt1, nt2, nt3, nt4)

			after := c.Snapshot()
			require.Equal(rt, pinned, *after.ServerLoopEpochWallMicros)
		}
	})
}
