//go:build !deadlock

// Package syncutil selects the mutex implementation used by LockedTransport.
// Plain sync.Mutex by default; build with -tags=deadlock to swap in
// github.com/sasha-s/go-deadlock and catch lock ordering bugs in tests that
// drive a simulated board from several goroutines.
package syncutil

import "sync"

// Mutex is a sync.Mutex unless built with the deadlock tag.
//
//nolint:gocritic // embedding exposes Lock/Unlock directly
type Mutex struct {
	sync.Mutex
}
