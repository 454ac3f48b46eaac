// Package atexit collects teardown callbacks that must run once when the
// process terminates.
package atexit

import (
	"sync"
)

// Registrar records a callback to be executed at process exit.
// Registering twice with the same key keeps the first callback.
type Registrar interface {
	RegisterOnce(key string, fn func())
}

type hook struct {
	key string
	fn  func()
}

type Hooks struct {
	mu    sync.Mutex
	keys  map[string]struct{}
	hooks []hook
	ran   bool
}

// RegisterOnce implements Registrar.
func (h *Hooks) RegisterOnce(key string, fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ran {
		return
	}

	if _, exists := h.keys[key]; exists {
		return
	}

	h.keys[key] = struct{}{}
	h.hooks = append(h.hooks, hook{key: key, fn: fn})
}

// Run executes registered callbacks in reverse registration order.
// Subsequent calls are no-ops.
func (h *Hooks) Run() {
	h.mu.Lock()
	if h.ran {
		h.mu.Unlock()
		return
	}
	h.ran = true
	hooks := h.hooks
	h.hooks = nil
	h.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i].fn()
	}
}

// Len returns the number of pending callbacks.
func (h *Hooks) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.hooks)
}

func New() *Hooks {
	return &Hooks{
		keys:  make(map[string]struct{}),
		hooks: make([]hook, 0),
	}
}

var _ Registrar = &Hooks{}

// Default is the process-wide registrar run by the mountns binary on exit.
var Default = New()

func RegisterOnce(key string, fn func()) {
	Default.RegisterOnce(key, fn)
}

func Run() {
	Default.Run()
}
