package service

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerRapidCallsCollapse(t *testing.T) {
	var called int32
	var lastValue int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	for i := 1; i <= 10; i++ {
		value := int32(i)
		debouncer.Schedule(func() {
			atomic.StoreInt32(&lastValue, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(120 * time.Millisecond)

	if got := atomic.LoadInt32(&called); got != 1 {
		t.Errorf("Expected 1 call, got %d", got)
	}
	if got := atomic.LoadInt32(&lastValue); got != 10 {
		t.Errorf("Expected last value 10, got %d", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(30 * time.Millisecond)

	debouncer.Schedule(func() {
		atomic.AddInt32(&called, 1)
	})
	debouncer.Cancel()

	time.Sleep(80 * time.Millisecond)

	if got := atomic.LoadInt32(&called); got != 0 {
		t.Errorf("Expected cancelled callback to never run, got %d calls", got)
	}
}

func TestDebouncerScheduleAfterCancel(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(30 * time.Millisecond)

	debouncer.Cancel()
	debouncer.Schedule(func() {
		atomic.AddInt32(&called, 1)
	})

	time.Sleep(80 * time.Millisecond)

	if got := atomic.LoadInt32(&called); got != 1 {
		t.Errorf("Expected 1 call after re-schedule, got %d", got)
	}
}
