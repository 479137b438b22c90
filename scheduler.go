package strata

import "log"

// PipelineRunner is the contract with the external generation pipeline:
// start a run for one chunk and deliver exactly one Completion on done.
// Runs are fire-and-forget; Run must return without blocking on the
// generation work itself.
type PipelineRunner interface {
	Run(chunkSize int, coord Coord, done chan<- Completion)
}

// Completion is the single event a run produces. The scheduler only needs
// the coordinate and whether the run failed; any generated payload goes
// to the painter, not here.
type Completion struct {
	Coord Coord
	Err   error
}

// queue is the ordered backlog of coordinates awaiting generation.
type queue struct {
	items []Coord
}

func (q *queue) push(c Coord) {
	q.items = append(q.items, c)
}

func (q *queue) pop() (Coord, bool) {
	if len(q.items) == 0 {
		return Coord{}, false
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, true
}

func (q *queue) len() int {
	return len(q.items)
}

// Scheduler drains the backlog through the pipeline one chunk at a time.
// A single busy flag serializes dispatch: at most one run is in flight,
// and completion of that run is what re-arms the next dispatch.
//
// All methods must be called from the goroutine that owns the frame loop.
// The pipeline may run wherever it likes; it reports back only through
// the completions channel, which the owner is expected to select on and
// feed into OnCompleted.
type Scheduler struct {
	runner    PipelineRunner
	chunkSize int

	backlog queue
	busy    bool

	failed      []Coord
	dispatched  int
	completions chan Completion
}

func NewScheduler(runner PipelineRunner, chunkSize int) *Scheduler {
	return &Scheduler{
		runner: runner,
		// one in-flight run means one pending completion at most
		completions: make(chan Completion, 1),
		chunkSize:   chunkSize,
	}
}

// Completions is the serializing channel the pipeline delivers into.
func (s *Scheduler) Completions() <-chan Completion {
	return s.completions
}

// Enqueue appends a coordinate to the backlog tail. Callers must have
// passed the coordinate through Registry.TryRegister first.
func (s *Scheduler) Enqueue(c Coord) {
	s.backlog.push(c)
}

// TryDispatchNext starts the next queued run if the scheduler is idle.
// Safe to call redundantly; the busy flag is the single source of truth,
// so extra calls while a run is in flight are no-ops.
func (s *Scheduler) TryDispatchNext() bool {
	if s.busy {
		return false
	}
	head, ok := s.backlog.pop()
	if !ok {
		return false
	}
	s.busy = true
	s.dispatched++
	s.runner.Run(s.chunkSize, head, s.completions)
	return true
}

// OnCompleted clears the busy flag and immediately re-evaluates the
// backlog, so the queue self-drains one chunk per completion signal. A
// failed run is recorded as a permanently failed chunk rather than
// retried: generation is deterministic, so a retry would fail the same
// way, and leaving the flag set would stall the scheduler forever.
func (s *Scheduler) OnCompleted(ev Completion) {
	if !s.busy {
		log.Panicf("[scheduler] completion for (%d, %d) while idle", ev.Coord.X, ev.Coord.Y)
	}
	s.busy = false
	if ev.Err != nil {
		log.Printf("[scheduler] generation failed for (%d, %d): %v", ev.Coord.X, ev.Coord.Y, ev.Err)
		s.failed = append(s.failed, ev.Coord)
	}
	s.TryDispatchNext()
}

// Idle reports whether no run is in flight and the backlog is empty.
func (s *Scheduler) Idle() bool {
	return !s.busy && s.backlog.len() == 0
}

func (s *Scheduler) Busy() bool {
	return s.busy
}

func (s *Scheduler) QueueLen() int {
	return s.backlog.len()
}

func (s *Scheduler) Dispatched() int {
	return s.dispatched
}

// Failed returns the coordinates whose runs reported an error.
func (s *Scheduler) Failed() []Coord {
	return s.failed
}
