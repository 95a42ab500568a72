// ABOUTME: Clock synchronization package
// ABOUTME: Provides four-timestamp clock sync with Sendspin servers
// Package sync translates the server's free-running loop clock into local
// playback deadlines using a one-time epoch pin rather than a moving
// average, so that audio scheduling never drifts mid-session.
//
// Example:
//
//	clock := sync.New()
//	clock.Update(t1, t2, t3, t4)
//	deadline, ok := clock.ServerToLocal(serverLoopMicros)
package sync
