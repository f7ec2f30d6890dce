// Package game implements the progression-and-reward state machine:
// countdowns, hint purchases, answer evaluation, level unlocks and the wallet.
package game

import "time"

// Task is a deferred callback that can be cancelled before it fires.
type Task interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the task before it ran.
	Stop() bool
}

// Scheduler runs callbacks after a delay without blocking the caller.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

// RealScheduler schedules callbacks on the runtime timer heap.
var RealScheduler Scheduler = timerScheduler{}
