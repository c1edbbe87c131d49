//go:build deadlock

// Package syncutil selects the mutex implementation used by LockedTransport.
// This variant reports lock cycles and long waits through go-deadlock.
package syncutil

import deadlock "github.com/sasha-s/go-deadlock"

// Mutex is a deadlock-detecting mutex.
type Mutex struct {
	deadlock.Mutex
}
