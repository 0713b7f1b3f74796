// Package surface implements a fixed-size, double-buffered render surface.
//
// A Surface owns a 512x512 offscreen buffer that a simulation draws into.
// A dedicated render loop copies the buffer to the host's visible surface at
// a fixed cadence and can be paused, woken, resumed and stopped from other
// goroutines. Pointer clicks are mapped onto the simulation grid and
// forwarded to an optional Simulation.
package surface

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"lightning/internal/core"
)

const (
	// Width and Height are the fixed logical dimensions of every surface.
	Width  = 512
	Height = 512

	// DefaultCadence is the sleep between two blits of the render loop.
	DefaultCadence = 10 * time.Millisecond
)

var (
	// ErrAlreadyRunning is returned when a second render loop is started.
	ErrAlreadyRunning = errors.New("surface: render loop already running")
	// ErrInterrupted is logged when a sleep or pause is cut short by Interrupt.
	ErrInterrupted = errors.New("surface: interrupted")
)

// Background is the color simulations clear the offscreen buffer with.
var Background = color.RGBA{R: 0, G: 0, B: 100, A: 255}

// State is the externally visible state of the render loop.
type State int

const (
	Stopped State = iota // no loop is active
	Running              // the loop blits every cadence
	Paused               // a pause is requested; the loop waits after each blit
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Allocator creates the offscreen buffer.
type Allocator func(w, h int) (*image.RGBA, error)

// NewRGBA is the default Allocator. A failed allocation is reported as an
// error instead of a panic.
func NewRGBA(w, h int) (img *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("allocate %dx%d buffer: %v", w, h, r)
		}
	}()
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

// Option configures a Surface.
type Option func(*Surface)

// WithCadence overrides the render loop sleep. Non-positive values are ignored.
func WithCadence(d time.Duration) Option {
	return func(s *Surface) {
		if d > 0 {
			s.cadence = d
		}
	}
}

// WithAllocator overrides how the offscreen buffer is allocated.
func WithAllocator(a Allocator) Option {
	return func(s *Surface) {
		if a != nil {
			s.alloc = a
		}
	}
}

// WithLogger gives the surface its own logger instead of the package one.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

// WithRegistrar sets the host the surface registers itself with for
// pointer events during initialization.
func WithRegistrar(r Registrar) Option {
	return func(s *Surface) { s.registrar = r }
}

type simRef struct{ sim core.Simulation }

// Surface is a fixed-size double-buffered drawing surface.
type Surface struct {
	cadence   time.Duration
	alloc     Allocator
	logger    *slog.Logger
	registrar Registrar

	sim atomic.Pointer[simRef]

	bufMu sync.Mutex
	buf   *image.RGBA
	size  image.Point

	mu             sync.Mutex
	cond           *sync.Cond
	running        bool
	pauseRequested bool
	interrupted    bool
	wakeGen        uint64
	waiters        int
	cancel         context.CancelFunc
	done           chan struct{}

	intr chan struct{}
}

// New returns an uninitialized surface. The offscreen buffer is allocated
// the first time the render loop runs.
func New(opts ...Option) *Surface {
	s := &Surface{
		cadence: DefaultCadence,
		alloc:   NewRGBA,
		size:    image.Pt(Width, Height),
		intr:    make(chan struct{}, 1),
	}
	s.cond = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return Logger()
}

// PreferredSize reports the fixed surface size.
func (s *Surface) PreferredSize() image.Point { return image.Pt(Width, Height) }

// SetSimulation injects the collaborator clicks are forwarded to. Passing
// nil detaches it.
func (s *Surface) SetSimulation(sim core.Simulation) {
	if sim == nil {
		s.sim.Store(nil)
		return
	}
	s.sim.Store(&simRef{sim: sim})
}

// Simulation returns the current collaborator or nil.
func (s *Surface) Simulation() core.Simulation {
	ref := s.sim.Load()
	if ref == nil {
		return nil
	}
	return ref.sim
}

// Initialized reports whether the offscreen buffer is allocated.
func (s *Surface) Initialized() bool {
	s.bufMu.Lock()
	defer s.bufMu.Unlock()
	return s.buf != nil
}

// init re-asserts the fixed size, registers for pointer events and
// allocates the offscreen buffer. On failure the buffer stays unset.
func (s *Surface) init() {
	s.size = image.Pt(Width, Height)
	if s.registrar != nil {
		s.registrar.Register(s)
	}
	buf, err := s.alloc(s.size.X, s.size.Y)
	if err == nil && (buf == nil || buf.Bounds().Size() != s.size) {
		err = fmt.Errorf("allocator returned a buffer of size %v", bufSize(buf))
	}

	s.bufMu.Lock()
	defer s.bufMu.Unlock()
	if err != nil {
		s.buf = nil
		s.log().Warn("offscreen buffer unavailable", "err", err)
		return
	}
	s.buf = buf
}

func bufSize(buf *image.RGBA) image.Point {
	if buf == nil {
		return image.Point{}
	}
	return buf.Bounds().Size()
}

// Draw calls fn with the offscreen buffer while holding the buffer lock. It
// does nothing while the buffer is unset.
func (s *Surface) Draw(fn func(dst *image.RGBA)) {
	s.bufMu.Lock()
	defer s.bufMu.Unlock()
	if s.buf == nil {
		return
	}
	fn(s.buf)
}

// Paint copies the offscreen buffer to g when it is allocated.
func (s *Surface) Paint(g Graphics) {
	s.bufMu.Lock()
	defer s.bufMu.Unlock()
	if s.buf == nil {
		return
	}
	g.DrawImage(s.buf)
}

// Update is Paint without a background erase.
func (s *Surface) Update(g Graphics) { s.Paint(g) }

// paintBuffer is the render loop blit. It does not check the buffer, so an
// unset buffer reaches g as a nil image.
func (s *Surface) paintBuffer(g Graphics) {
	s.bufMu.Lock()
	defer s.bufMu.Unlock()
	if s.buf == nil {
		g.DrawImage(nil)
		return
	}
	g.DrawImage(s.buf)
}

// State reports whether the loop is stopped, running or paused.
func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.running:
		return Stopped
	case s.pauseRequested:
		return Paused
	default:
		return Running
	}
}

// PauseRequested reports whether a pause is pending or in effect.
func (s *Surface) PauseRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauseRequested
}

// RequestPause asks the render loop to block after its next blit. The
// request holds until Resume; it also survives a restart of the loop.
func (s *Surface) RequestPause() {
	s.mu.Lock()
	s.pauseRequested = true
	s.mu.Unlock()
}

// Resume clears a pause request and releases every waiter.
func (s *Surface) Resume() {
	s.mu.Lock()
	s.pauseRequested = false
	s.wakeGen++
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Wake signals one waiter without clearing the pause request. A woken render
// loop therefore blits a single frame and pauses again.
func (s *Surface) Wake() {
	s.mu.Lock()
	s.wakeGen++
	s.cond.Signal()
	s.mu.Unlock()
}

// Interrupt cuts the render loop's current sleep or pause short. The loop
// logs the interruption and carries on.
func (s *Surface) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupted = true
	s.cond.Broadcast()
	select {
	case s.intr <- struct{}{}:
	default:
	}
}

// Pause blocks the caller until Wake, Resume or Interrupt is called, or the
// render loop stops.
func (s *Surface) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waitLocked(context.Background())
}

// waitIfPaused blocks the render loop while a pause is requested. The
// request is checked under the same lock the wait uses, so a Resume racing
// with the check cannot be missed.
func (s *Surface) waitIfPaused(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pauseRequested {
		return
	}
	s.waitLocked(ctx)
}

func (s *Surface) waitLocked(ctx context.Context) {
	gen := s.wakeGen
	s.waiters++
	for gen == s.wakeGen && !s.interrupted && ctx.Err() == nil {
		s.cond.Wait()
	}
	s.waiters--
	if s.interrupted {
		s.interrupted = false
		select {
		case <-s.intr:
		default:
		}
		s.log().Debug("pause interrupted", "err", ErrInterrupted)
	}
}

func (s *Surface) sleep(ctx context.Context) {
	t := time.NewTimer(s.cadence)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	case <-s.intr:
		s.mu.Lock()
		s.interrupted = false
		s.mu.Unlock()
		s.log().Debug("sleep interrupted", "err", ErrInterrupted)
	}
}

func (s *Surface) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	return nil
}

// Run initializes the surface if needed and runs the render loop on the
// calling goroutine until ctx is done.
func (s *Surface) Run(ctx context.Context, g Graphics) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.loop(ctx, g)
	return nil
}

// Start runs the render loop on a new goroutine. Stop cancels and joins it.
func (s *Surface) Start(ctx context.Context, g Graphics) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.running = true
	s.cancel, s.done = cancel, done
	s.mu.Unlock()
	go func() {
		defer close(done)
		s.loop(ctx, g)
	}()
	return nil
}

// Stop cancels a loop launched by Start and waits for it to exit. Loops
// launched by Run are stopped through their context.
func (s *Surface) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done returns a channel closed when the loop launched by Start exits, or
// nil when no such loop exists.
func (s *Surface) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Surface) loop(ctx context.Context, g Graphics) {
	release := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer func() {
		release()
		s.mu.Lock()
		s.running = false
		s.wakeGen++
		s.cond.Broadcast()
		s.mu.Unlock()
		s.log().Info("render loop stopped")
	}()

	if !s.Initialized() {
		s.init()
	}
	s.log().Info("render loop started", "cadence", s.cadence)

	for ctx.Err() == nil {
		s.paintBuffer(g)
		s.waitIfPaused(ctx)
		s.sleep(ctx)
	}
}

// HandlePointer implements Listener. Only clicks have an effect.
func (s *Surface) HandlePointer(ev *PointerEvent) {
	if ev == nil {
		return
	}
	switch ev.Kind {
	case PointerClicked:
		s.clicked(ev)
	case PointerPressed, PointerReleased, PointerEntered, PointerExited:
	}
}

func (s *Surface) clicked(ev *PointerEvent) {
	sim := s.Simulation()
	if sim == nil {
		s.log().Debug("click ignored: no simulation", "x", ev.X, "y", ev.Y)
		return
	}
	if sim.ChargeType() == core.NoCharge {
		return
	}
	if gx, gy, ok := ScreenToGrid(ev.X, ev.Y, sim.XRes(), sim.YRes()); ok {
		sim.SetCharge(gx, gy)
	} else {
		s.log().Debug("click outside surface", "x", ev.X, "y", ev.Y)
	}
	ev.Consume()
}
