package intake

import (
	"container/heap"
	"sort"
)

type urgentItem struct {
	patient  Patient
	priority int
	seq      uint64
}

// urgentHeap orders by (priority, seq). seq is the arrival counter, so equal
// priorities come out in arrival order.
type urgentHeap []urgentItem

func (h urgentHeap) Len() int { return len(h) }

func (h urgentHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h urgentHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *urgentHeap) Push(x any) { *h = append(*h, x.(urgentItem)) }

func (h *urgentHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = urgentItem{}
	*h = old[:n-1]
	return it
}

// UrgencyQueue hands out the lowest priority value first. Priorities are
// caller-supplied integers with no enforced range.
type UrgencyQueue struct {
	h   urgentHeap
	seq uint64
}

func NewUrgencyQueue() *UrgencyQueue {
	return &UrgencyQueue{}
}

func (q *UrgencyQueue) Enqueue(p Patient, priority int) {
	heap.Push(&q.h, urgentItem{patient: p, priority: priority, seq: q.seq})
	q.seq++
}

// Dequeue removes and returns the most urgent patient. ok is false when the
// queue is empty.
func (q *UrgencyQueue) Dequeue() (p Patient, ok bool) {
	if q.IsEmpty() {
		return Patient{}, false
	}
	it := heap.Pop(&q.h).(urgentItem)
	return it.patient, true
}

func (q *UrgencyQueue) Peek() (Patient, bool) {
	if q.IsEmpty() {
		return Patient{}, false
	}
	return q.h[0].patient, true
}

func (q *UrgencyQueue) Size() int {
	return q.h.Len()
}

func (q *UrgencyQueue) IsEmpty() bool {
	return q.h.Len() == 0
}

// List returns the queued patients in dequeue order.
func (q *UrgencyQueue) List() []Patient {
	items := q.sorted()
	out := make([]Patient, len(items))
	for i, it := range items {
		out[i] = it.patient
	}
	return out
}

// Entries is List with the rank each patient was enqueued at.
func (q *UrgencyQueue) Entries() []UrgentEntry {
	items := q.sorted()
	out := make([]UrgentEntry, len(items))
	for i, it := range items {
		out[i] = UrgentEntry{Patient: it.patient, Priority: it.priority}
	}
	return out
}

func (q *UrgencyQueue) sorted() urgentHeap {
	items := make(urgentHeap, len(q.h))
	copy(items, q.h)
	sort.Sort(items)
	return items
}

// Remove drops every entry for id and returns how many were dropped. The
// survivors keep their arrival sequence, so tie order is unchanged.
func (q *UrgencyQueue) Remove(id string) int {
	kept := q.h[:0]
	for _, it := range q.h {
		if it.patient.ID != id {
			kept = append(kept, it)
		}
	}
	removed := len(q.h) - len(kept)
	for i := len(kept); i < len(q.h); i++ {
		q.h[i] = urgentItem{}
	}
	q.h = kept
	heap.Init(&q.h)
	return removed
}
