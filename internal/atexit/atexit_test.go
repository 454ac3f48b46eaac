package atexit

import (
	"sync"
	"testing"
)

func TestHooksOrder(t *testing.T) {
	hooks := New()

	calls := make([]string, 0)

	hooks.RegisterOnce("first", func() { calls = append(calls, "first") })
	hooks.RegisterOnce("second", func() { calls = append(calls, "second") })
	hooks.RegisterOnce("first", func() { calls = append(calls, "duplicate") })

	if e, g := 2, hooks.Len(); e != g {
		t.Fatalf("hooks.Len(): expected %d, got %d", e, g)
	}

	hooks.Run()
	hooks.Run()

	if e, g := 2, len(calls); e != g {
		t.Fatalf("len(calls): expected %d, got %d", e, g)
	}

	if e, g := "second", calls[0]; e != g {
		t.Errorf("calls[0]: expected '%v', got '%v'", e, g)
	}

	if e, g := "first", calls[1]; e != g {
		t.Errorf("calls[1]: expected '%v', got '%v'", e, g)
	}
}

func TestHooksConcurrentRegistration(t *testing.T) {
	hooks := New()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		count int
	)

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hooks.RegisterOnce("shared", func() {
				mu.Lock()
				defer mu.Unlock()
				count++
			})
		}()
	}

	wg.Wait()
	hooks.Run()

	if e, g := 1, count; e != g {
		t.Errorf("count: expected %d, got %d", e, g)
	}
}

func TestHooksRegisterAfterRun(t *testing.T) {
	hooks := New()
	hooks.Run()

	hooks.RegisterOnce("late", func() {
		t.Error("late hook should never run")
	})

	if e, g := 0, hooks.Len(); e != g {
		t.Errorf("hooks.Len(): expected %d, got %d", e, g)
	}

	hooks.Run()
}
