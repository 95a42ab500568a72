// ABOUTME: Tests for the deadline-ordered audio scheduler
// ABOUTME: Covers ordering, late-drop, flush, and the schedule/drain invariant
package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Sendspin/sendspin-go/pkg/audio"
)

func bufAt(ts int64, deadline time.Time) audio.Buffer {
	return audio.Buffer{
		Timestamp: ts,
		PlayAt:    deadline,
		Samples:   []int32{0, 0},
		Format:    audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16},
	}
}

func TestSchedulerOrdersByDeadline(t *testing.T) {
	base := time.Now()
	s := New()
	s.now = func() time.Time { return base }

	// Each poll lands 50ms after the buffer's deadline, so the buffers must
	// last longer than that or the late-drop rule would discard them.
	longAt := func(ts int64, deadline time.Time) audio.Buffer {
		b := bufAt(ts, deadline)
		b.Samples = make([]int32, 48000*2) // 1 second of stereo audio
		return b
	}

	s.Schedule(longAt(3, base.Add(300*time.Millisecond)))
	s.Schedule(longAt(1, base.Add(100*time.Millisecond)))
	s.Schedule(longAt(2, base.Add(200*time.Millisecond)))

	poll := func(at time.Duration) (audio.Buffer, bool) {
		s.now = func() time.Time { return base.Add(at) }
		return s.NextReady()
	}

	_, ok := poll(50 * time.Millisecond)
	require.False(t, ok)

	buf, ok := poll(150 * time.Millisecond)
	require.True(t, ok)
	require.EqualValues(t, 1, buf.Timestamp)

	buf, ok = poll(250 * time.Millisecond)
	require.True(t, ok)
	require.EqualValues(t, 2, buf.Timestamp)

	buf, ok = poll(350 * time.Millisecond)
	require.True(t, ok)
	require.EqualValues(t, 3, buf.Timestamp)
}

func TestSchedulerEarlyPolicyReturnsFalse(t *testing.T) {
	base := time.Now()
	s := New()
	s.now = func() time.Time { return base }
	s.Schedule(bufAt(1, base.Add(time.Second)))

	_, ok := s.NextReady()
	require.False(t, ok)
}

func TestSchedulerLatePolicyReleasesImmediately(t *testing.T) {
	base := time.Now()
	s := New()
	s.now = func() time.Time { return base.Add(10 * time.Millisecond) }
	// Buffer was due 10ms ago; a bufAt buffer (1 frame / 48000) is tiny,
	// but lag (10ms) exceeds it, so the late-drop rule applies and it's
	// dropped rather than released. Use a buffer whose duration exceeds lag
	// to exercise plain late-release instead.
	longBuf := audio.Buffer{
		Timestamp: 1,
		PlayAt:    base,
		Samples:   make([]int32, 48000*2), // 1 second of stereo audio
		Format:    audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16},
	}
	s.Schedule(longBuf)

	buf, ok := s.NextReady()
	require.True(t, ok)
	require.EqualValues(t, 1, buf.Timestamp)
}

func TestSchedulerDropsExcessivelyLateBuffer(t *testing.T) {
	base := time.Now()
	s := New()
	shortBuf := bufAt(1, base) // 2 stereo samples = 1 frame / 48000 ≈ 21µs

	s.now = func() time.Time { return base }
	s.Schedule(shortBuf)
	s.Schedule(bufAt(2, base.Add(time.Hour))) // far-future sentinel

	// Advance well past the short buffer's own duration.
	s.now = func() time.Time { return base.Add(time.Second) }
	buf, ok := s.NextReady()
	require.False(t, ok) // short buffer dropped, sentinel still in the future
	_ = buf
}

func TestFlushClearsQueue(t *testing.T) {
	base := time.Now()
	s := New()
	s.now = func() time.Time { return base }
	s.Schedule(bufAt(1, base))
	s.Schedule(bufAt(2, base))
	require.Equal(t, 2, s.Len())

	s.Flush()
	require.Equal(t, 0, s.Len())

	_, ok := s.NextReady()
	require.False(t, ok)
}

// TestScheduleDrainProperty checks the §8 invariant: for every sequence of
// schedule calls followed by exhaustive next_ready polls past all
// deadlines, the multiset of returned buffers equals the multiset
// scheduled, with no duplicates and no losses other than late-drops.
func TestScheduleDrainProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := time.Now()
		s := New()
		s.now = func() time.Time { return base }

		n := rapid.IntRange(0, 20).Draw(rt, "n")
		scheduled := make(map[int64]bool, n)
		for i := 0; i < n; i++ {
			ts := int64(i)
			offsetMs := rapid.IntRange(0, 500).Draw(rt, "offsetMs")
			// Use a buffer long enough that it's never late-dropped within
			// this test's polling horizon, isolating the ordering/no-loss
			// invariant from the late-drop rule (covered separately above).
			buf := audio.Buffer{
				Timestamp: ts,
				PlayAt:    base.Add(time.Duration(offsetMs) * time.Millisecond),
				Samples:   make([]int32, 48000*2*10), // 10s stereo, far exceeds poll horizon
				Format:    audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16},
			}
			s.Schedule(buf)
			scheduled[ts] = true
		}

		s.now = func() time.Time { return base.Add(time.Second) }
		seen := make(map[int64]bool, n)
		for {
			buf, ok := s.NextReady()
			if !ok {
				break
			}
			require.False(rt, seen[buf.Timestamp], "duplicate release of timestamp %d", buf.Timestamp)
			seen[buf.Timestamp] = true
		}

		require.Equal(rt, scheduled, seen)
	})
}
