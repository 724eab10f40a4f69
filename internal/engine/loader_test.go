package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	calls   atomic.Int32
	err     error
	release chan struct{}
}

func (p *fakeProber) Probe(ctx context.Context) (string, error) {
	p.calls.Add(1)
	if p.release != nil {
		<-p.release
	}
	if p.err != nil {
		return "", p.err
	}
	return "typst 0.12.0", nil
}

type fakeCompiler struct {
	mu      sync.Mutex
	markups []string
	err     error
}

func (c *fakeCompiler) Compile(ctx context.Context, markup string, format Format) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	c.markups = append(c.markups, markup)
	return []byte(string(format) + ":" + markup), nil
}

func newTestLoader(p *fakeProber, c *fakeCompiler) *Loader {
	return NewLoader(Options{Prober: p, Compiler: c})
}

func TestLoader_InitialState(t *testing.T) {
	l := newTestLoader(&fakeProber{}, &fakeCompiler{})
	assert.Equal(t, State{}, l.State())
}

func TestLoader_RenderBeforeReady(t *testing.T) {
	l := newTestLoader(&fakeProber{}, &fakeCompiler{})

	_, err := l.Render(context.Background(), "= Hi", FormatPDF)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.EqualError(t, err, "typst not ready")
}

func TestLoader_InitializeAndRender(t *testing.T) {
	p := &fakeProber{}
	c := &fakeCompiler{}
	l := newTestLoader(p, c)

	require.NoError(t, l.Initialize(context.Background()))
	assert.Equal(t, State{IsReady: true, HasInitialized: true}, l.State())
	assert.Equal(t, "typst 0.12.0", l.Version())

	out, err := l.Render(context.Background(), "= Hi", FormatSVG)
	require.NoError(t, err)
	assert.Equal(t, "svg:= Hi", string(out))

	require.NoError(t, l.Initialize(context.Background()))
	assert.Equal(t, int32(1), p.calls.Load(), "ready loader does not initialize again")
}

func TestLoader_ConcurrentInitializeIsCoalesced(t *testing.T) {
	p := &fakeProber{release: make(chan struct{})}
	l := newTestLoader(p, &fakeCompiler{})

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- l.Initialize(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return l.State().IsLoading }, time.Second, time.Millisecond)
	close(p.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), p.calls.Load())
	assert.True(t, l.State().IsReady)
}

func TestLoader_FailureAndRetry(t *testing.T) {
	p := &fakeProber{err: errors.New("typst not found")}
	l := newTestLoader(p, &fakeCompiler{})

	err := l.Initialize(context.Background())
	require.Error(t, err)
	assert.Equal(t, State{Error: "typst not found"}, l.State())

	_, err = l.Render(context.Background(), "x", FormatPDF)
	assert.ErrorIs(t, err, ErrNotReady)

	p.err = nil
	require.NoError(t, l.Retry(context.Background()))
	assert.Equal(t, State{IsReady: true, HasInitialized: true}, l.State())
	assert.Equal(t, int32(2), p.calls.Load())
}

func TestLoader_SubscribeDeliversCurrentStateAndChanges(t *testing.T) {
	l := newTestLoader(&fakeProber{}, &fakeCompiler{})

	var mu sync.Mutex
	var seen []State
	unsubscribe := l.Subscribe(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	})

	require.NoError(t, l.Initialize(context.Background()))
	unsubscribe()
	l.Reset()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 3)
	assert.Equal(t, State{}, seen[0])
	assert.True(t, seen[1].IsLoading)
	assert.Equal(t, State{IsReady: true, HasInitialized: true}, seen[2])
}

func TestLoader_PanickingListenerDoesNotBreakOthers(t *testing.T) {
	l := newTestLoader(&fakeProber{}, &fakeCompiler{})

	l.Subscribe(func(State) { panic("boom") })
	var calls atomic.Int32
	l.Subscribe(func(State) { calls.Add(1) })

	require.NoError(t, l.Initialize(context.Background()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestLoader_Reset(t *testing.T) {
	l := newTestLoader(&fakeProber{}, &fakeCompiler{})
	require.NoError(t, l.Initialize(context.Background()))

	l.Reset()
	assert.Equal(t, State{}, l.State())
	assert.Empty(t, l.Version())

	_, err := l.Render(context.Background(), "x", FormatPDF)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestLoader_ResetDiscardsInFlightResult(t *testing.T) {
	p := &fakeProber{release: make(chan struct{})}
	l := newTestLoader(p, &fakeCompiler{})

	done := make(chan error, 1)
	go func() { done <- l.Initialize(context.Background()) }()
	require.Eventually(t, func() bool { return l.State().IsLoading }, time.Second, time.Millisecond)

	l.Reset()
	close(p.release)
	require.NoError(t, <-done)

	assert.Equal(t, State{}, l.State())
}

func TestLoader_CallerCancellation(t *testing.T) {
	p := &fakeProber{release: make(chan struct{})}
	l := newTestLoader(p, &fakeCompiler{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Initialize(ctx) }()
	require.Eventually(t, func() bool { return l.State().IsLoading }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(p.release)
	require.NoError(t, l.Initialize(context.Background()))
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestLoader_RenderPropagatesCompileError(t *testing.T) {
	compileErr := &CompileError{Message: "typst compilation failed", LogOutput: "error: unclosed delimiter"}
	l := newTestLoader(&fakeProber{}, &fakeCompiler{err: compileErr})
	require.NoError(t, l.Initialize(context.Background()))

	_, err := l.Render(context.Background(), "#text(", FormatPDF)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.LogOutput, "unclosed delimiter")
}
