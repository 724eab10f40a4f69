// Package engine wraps the typst compiler behind a loader that tracks a one-time
// readiness state, coalesces concurrent initialization and notifies subscribers.
package engine

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// State is a snapshot of the loader lifecycle.
type State struct {
	IsLoading      bool   `json:"isLoading"`
	IsReady        bool   `json:"isReady"`
	Error          string `json:"error,omitempty"`
	HasInitialized bool   `json:"hasInitialized"`
}

// Listener receives state snapshots.
type Listener func(State)

// Options configures a Loader.
type Options struct {
	Binary    string
	FontPaths []string
	Timeout   time.Duration
	Logger    *log.Logger

	// Compiler and Prober replace the typst CLI when set.
	Compiler Compiler
	Prober   Prober
}

type subscription struct {
	id int
	fn Listener
}

// Loader owns the engine state and its subscribers. Create one per process and
// pass it to the components that render documents.
type Loader struct {
	opts   Options
	logger *log.Logger
	prober Prober

	group singleflight.Group

	mu          sync.RWMutex
	state       State
	generation  int
	compiler    Compiler
	version     string
	nextID      int
	subscribers []subscription
}

const initKey = "initialize"

// NewLoader returns an uninitialized loader.
func NewLoader(opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultCompileTimeout
	}

	prober := opts.Prober
	if prober == nil {
		if p, ok := opts.Compiler.(Prober); ok {
			prober = p
		} else {
			prober = &TypstCLI{Binary: opts.Binary, Timeout: opts.Timeout}
		}
	}

	return &Loader{
		opts:   opts,
		logger: logger,
		prober: prober,
	}
}

// State returns a copy of the current state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Version returns the compiler version reported during initialization.
func (l *Loader) Version() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Subscribe registers fn and immediately delivers the current state to it.
// The returned function removes the subscription.
func (l *Loader) Subscribe(fn Listener) func() {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.subscribers = append(l.subscribers, subscription{id: id, fn: fn})
	current := l.state
	l.mu.Unlock()

	l.deliver(fn, current)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.subscribers {
			if s.id == id {
				l.subscribers = append(l.subscribers[:i], l.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Initialize prepares the engine once. Concurrent callers share a single
// in-flight initialization; once ready, later calls return immediately.
// Cancelling ctx stops the caller from waiting but not the shared attempt.
func (l *Loader) Initialize(ctx context.Context) error {
	if s := l.State(); s.IsReady && s.HasInitialized {
		return nil
	}

	ch := l.group.DoChan(initKey, func() (any, error) {
		return nil, l.initialize(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// Retry clears a previous failure and initializes again.
func (l *Loader) Retry(ctx context.Context) error {
	l.update(func(s *State) {
		s.HasInitialized = false
		s.Error = ""
	})
	return l.Initialize(ctx)
}

// Reset returns the loader to its initial state. An initialization still in
// flight completes for its waiters but no longer changes the state.
func (l *Loader) Reset() {
	l.group.Forget(initKey)

	l.mu.Lock()
	l.generation++
	l.state = State{}
	l.compiler = nil
	l.version = ""
	l.mu.Unlock()

	l.notify()
}

// Render compiles markup into format. It fails with ErrNotReady until
// initialization has succeeded.
func (l *Loader) Render(ctx context.Context, markup string, format Format) ([]byte, error) {
	l.mu.RLock()
	ready := l.state.IsReady
	compiler := l.compiler
	l.mu.RUnlock()

	if !ready || compiler == nil {
		return nil, ErrNotReady
	}

	start := time.Now()
	out, err := compiler.Compile(ctx, markup, format)
	if err != nil {
		l.logger.Error("typst compilation failed", "format", format, "err", err)
		return nil, err
	}
	l.logger.Debug("compiled document",
		"format", format,
		"bytes", len(out),
		"duration", time.Since(start).Round(time.Millisecond))
	return out, nil
}

func (l *Loader) initialize(ctx context.Context) error {
	l.mu.Lock()
	generation := l.generation
	l.state.IsLoading = true
	l.state.Error = ""
	l.mu.Unlock()
	l.notify()

	l.logger.Info("initializing typst")
	start := time.Now()

	version, err := l.prober.Probe(ctx)
	if err != nil {
		l.logger.Error("failed to initialize typst", "err", err)
		l.finish(generation, func(s *State) {
			*s = State{Error: err.Error()}
		})
		return err
	}

	compiler := l.opts.Compiler
	if compiler == nil {
		compiler = &TypstCLI{
			Binary:    l.opts.Binary,
			FontPaths: l.availableFontPaths(),
			Timeout:   l.opts.Timeout,
		}
	}

	l.mu.Lock()
	if l.generation == generation {
		l.compiler = compiler
		l.version = version
	}
	l.mu.Unlock()

	l.finish(generation, func(s *State) {
		*s = State{IsReady: true, HasInitialized: true}
	})
	l.logger.Info("typst initialized",
		"version", version,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// availableFontPaths drops configured font directories that do not exist.
func (l *Loader) availableFontPaths() []string {
	var paths []string
	for _, p := range l.opts.FontPaths {
		if _, err := os.Stat(p); err != nil {
			l.logger.Warn("skipping font path", "path", p, "err", err)
			continue
		}
		paths = append(paths, p)
	}
	return paths
}

// finish applies fn only if no Reset happened since the attempt started.
func (l *Loader) finish(generation int, fn func(*State)) {
	l.mu.Lock()
	if l.generation != generation {
		l.mu.Unlock()
		return
	}
	fn(&l.state)
	l.mu.Unlock()
	l.notify()
}

func (l *Loader) update(fn func(*State)) {
	l.mu.Lock()
	fn(&l.state)
	l.mu.Unlock()
	l.notify()
}

func (l *Loader) notify() {
	l.mu.RLock()
	current := l.state
	subs := make([]subscription, len(l.subscribers))
	copy(subs, l.subscribers)
	l.mu.RUnlock()

	for _, s := range subs {
		l.deliver(s.fn, current)
	}
}

func (l *Loader) deliver(fn Listener, s State) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("engine listener panicked", "panic", r)
		}
	}()
	fn(s)
}
