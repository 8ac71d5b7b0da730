package proofsim

import "sync"

// The pipeline core is a single pure loop; this file provides the two
// thin scheduling adapters around it. RunAsync dispatches a run to its
// own goroutine and communicates with the caller purely via messages on
// a channel. Chunked drives the identical loop in bounded chunks so a
// host event loop is never blocked. Neither adapter changes the per-pixel
// algorithm or its ordering guarantees, only the scheduling granularity.

// Event is one message from an in-flight run: a *Progress, then finally
// either a *Completed or a *Failed, after which the channel is closed.
type Event interface {
	event()
}

// Progress reports a monotonically non-decreasing percentage in [0,100].
type Progress struct {
	Percent int
}

// Completed carries the result of a successful run.
type Completed struct {
	Result *Result
}

// Failed carries the failure of a run. No partial result is available.
type Failed struct {
	Err error
}

func (*Progress) event()  {}
func (*Completed) event() {}
func (*Failed) event()    {}

// RunAsync processes the request on its own goroutine. The returned
// channel delivers zero or more *Progress events followed by exactly one
// *Completed or *Failed, and is then closed. The request buffers are
// owned by the run until that final event.
func RunAsync(req Request) <-chan Event {
	events := make(chan Event)
	go func() {
		defer close(events)
		result, err := Process(req, func(percent int) {
			events <- &Progress{Percent: percent}
		})
		if err != nil {
			events <- &Failed{Err: err}
			return
		}
		events <- &Completed{Result: result}
	}()
	return events
}

// Default number of pixels processed per cooperative step.
const DefaultChunkSize = 65536

// Chunked drives one run under a cooperative scheduler: each Step call
// processes a bounded number of pixels and returns, so the hosting loop
// can interleave other work. Results are identical to Process.
type Chunked struct {
	r         *run
	chunkSize int
	result    *Result
}

// NewChunked validates the request and prepares a chunked run. chunkSize
// <= 0 selects DefaultChunkSize. onProgress may be nil.
func NewChunked(req Request, chunkSize int, onProgress func(percent int)) (*Chunked, error) {
	r, err := newRun(req, onProgress)
	if err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunked{r: r, chunkSize: chunkSize}, nil
}

// Step processes the next chunk of pixels and reports whether the run has
// finished. Calling Step after completion is a no-op returning true.
func (c *Chunked) Step() (done bool) {
	if c.result != nil {
		return true
	}
	if c.r.step(c.chunkSize) {
		c.result = c.r.finish()
		return true
	}
	return false
}

// Result returns the finished result, or nil while the run is still in
// progress.
func (c *Chunked) Result() *Result {
	return c.result
}

// Session serializes runs over a single image context. Only one run is in
// flight at a time; a Submit issued while a run is active supersedes any
// run already waiting, and events from superseded runs are discarded
// rather than racing to update shared display state. There is no
// cancellation beyond ignoring a stale run's results.
type Session struct {
	mu         sync.Mutex
	generation int
	active     bool
	pending    *Request
	events     chan Event
}

// NewSession creates a session delivering events for the most recent
// submission on Events.
func NewSession() *Session {
	return &Session{events: make(chan Event, 16)}
}

// Events delivers progress and completion messages of the latest
// non-superseded run.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Submit schedules a run. If a run is already active the request is
// coalesced: it replaces any previously waiting request and starts once
// the active run finishes, whose remaining events are dropped.
func (s *Session) Submit(req Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.active {
		s.pending = &req
		return
	}
	s.start(req, s.generation)
}

// start launches a run for the given generation. Caller must hold mu.
func (s *Session) start(req Request, gen int) {
	s.active = true
	go func() {
		for ev := range RunAsync(req) {
			s.mu.Lock()
			stale := gen != s.generation
			s.mu.Unlock()
			if !stale {
				s.events <- ev
			}
		}
		s.mu.Lock()
		s.active = false
		if s.pending != nil {
			next := *s.pending
			s.pending = nil
			s.start(next, s.generation)
		}
		s.mu.Unlock()
	}()
}
