package intake

// RoutineQueue is a strict FIFO of patients awaiting non-urgent service.
type RoutineQueue struct {
	items []Patient
	head  int
}

func NewRoutineQueue() *RoutineQueue {
	return &RoutineQueue{}
}

func (q *RoutineQueue) Enqueue(p Patient) {
	q.items = append(q.items, p)
}

// Dequeue removes and returns the head. ok is false when the queue is empty.
func (q *RoutineQueue) Dequeue() (p Patient, ok bool) {
	if q.IsEmpty() {
		return Patient{}, false
	}
	p = q.items[q.head]
	q.items[q.head] = Patient{}
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return p, true
}

func (q *RoutineQueue) Peek() (Patient, bool) {
	if q.IsEmpty() {
		return Patient{}, false
	}
	return q.items[q.head], true
}

func (q *RoutineQueue) Size() int {
	return len(q.items) - q.head
}

func (q *RoutineQueue) IsEmpty() bool {
	return q.Size() == 0
}

// List returns the queued patients head to tail without mutating the queue.
func (q *RoutineQueue) List() []Patient {
	out := make([]Patient, q.Size())
	copy(out, q.items[q.head:])
	return out
}

// Remove drops every entry for id, keeping the order of the rest, and
// returns how many were dropped.
func (q *RoutineQueue) Remove(id string) int {
	kept := q.items[:0]
	for _, p := range q.items[q.head:] {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	removed := q.Size() - len(kept)
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = Patient{}
	}
	q.items = kept
	q.head = 0
	return removed
}
