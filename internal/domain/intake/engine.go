package intake

import "fmt"

// Resolver looks up the current registry record for a queued patient.
// *Registry satisfies it.
type Resolver interface {
	Find(id string) (Patient, bool)
}

// Engine assigns queued patients to doctors. Each engine owns its own queues;
// callers feed it with Admit and run it once with Assign.
type Engine struct {
	routine  *RoutineQueue
	urgent   *UrgencyQueue
	resolver Resolver
}

// NewEngine returns an engine with empty queues. When resolver is non-nil,
// every queued patient must still resolve at assignment time and the
// resolved record is the one placed.
func NewEngine(resolver Resolver) *Engine {
	return &Engine{
		routine:  NewRoutineQueue(),
		urgent:   NewUrgencyQueue(),
		resolver: resolver,
	}
}

// Admit routes p into the urgency queue at the given priority when urgent is
// set, otherwise into the routine queue.
func (e *Engine) Admit(p Patient, urgent bool, priority int) {
	if urgent {
		e.urgent.Enqueue(p, priority)
		return
	}
	e.routine.Enqueue(p)
}

// Pending returns the number of patients waiting in both queues.
func (e *Engine) Pending() int {
	return e.routine.Size() + e.urgent.Size()
}

// Assign drains the urgency queue, most urgent first, and then the routine
// queue. Each patient goes to the doctor with the lowest running count; ties
// go to the doctor listed first. Availability and specialization are not
// consulted.
//
// On ErrInvalidAssignmentInput both queues are left exactly as they were.
func (e *Engine) Assign(doctors []Doctor) (*Assignments, error) {
	if err := validateDoctors(doctors); err != nil {
		return nil, err
	}
	if err := e.checkResolvable(); err != nil {
		return nil, err
	}

	w := newWorkload(doctors)
	out := &Assignments{
		ByDoctor: make(map[string][]Patient),
		Order:    make([]Placement, 0, e.Pending()),
	}

	place := func(p Patient, kind QueueKind) {
		if e.resolver != nil {
			// checkResolvable guarantees the lookup succeeds.
			p, _ = e.resolver.Find(p.ID)
		}
		id := w.take()
		out.ByDoctor[id] = append(out.ByDoctor[id], p)
		out.Order = append(out.Order, Placement{PatientID: p.ID, DoctorID: id, Queue: kind})
	}

	for {
		p, ok := e.urgent.Dequeue()
		if !ok {
			break
		}
		place(p, QueueUrgent)
	}
	for {
		p, ok := e.routine.Dequeue()
		if !ok {
			break
		}
		place(p, QueueRoutine)
	}

	out.Workload = w.snapshot()
	return out, nil
}

func validateDoctors(doctors []Doctor) error {
	if len(doctors) == 0 {
		return fmt.Errorf("%w: no doctors supplied", ErrInvalidAssignmentInput)
	}
	seen := make(map[string]struct{}, len(doctors))
	for i, d := range doctors {
		if d.ID == "" {
			return fmt.Errorf("%w: doctor at position %d has no id", ErrInvalidAssignmentInput, i)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("%w: doctor %s listed twice", ErrInvalidAssignmentInput, d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}

func (e *Engine) checkResolvable() error {
	if e.resolver == nil {
		return nil
	}
	for _, p := range e.urgent.List() {
		if _, ok := e.resolver.Find(p.ID); !ok {
			return fmt.Errorf("%w: urgent patient %s is no longer registered", ErrInvalidAssignmentInput, p.ID)
		}
	}
	for _, p := range e.routine.List() {
		if _, ok := e.resolver.Find(p.ID); !ok {
			return fmt.Errorf("%w: patient %s is no longer registered", ErrInvalidAssignmentInput, p.ID)
		}
	}
	return nil
}

// workload holds per-run counters in doctor list order.
type workload struct {
	ids    []string
	counts []int
}

func newWorkload(doctors []Doctor) *workload {
	w := &workload{
		ids:    make([]string, len(doctors)),
		counts: make([]int, len(doctors)),
	}
	for i, d := range doctors {
		w.ids[i] = d.ID
	}
	return w
}

// take selects the least-loaded doctor, first in list order on ties, and
// charges one unit to it.
func (w *workload) take() string {
	best := 0
	for i := 1; i < len(w.counts); i++ {
		if w.counts[i] < w.counts[best] {
			best = i
		}
	}
	w.counts[best]++
	return w.ids[best]
}

func (w *workload) snapshot() map[string]int {
	m := make(map[string]int, len(w.ids))
	for i, id := range w.ids {
		m[id] = w.counts[i]
	}
	return m
}
