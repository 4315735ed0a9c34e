package intake

// Registry is an ordered collection of patient records. It performs no
// uniqueness check: duplicate IDs are stored and lookups return the first
// match in insertion order.
type Registry struct {
	records []Patient
	count   int
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Insert appends p to the end of the collection.
func (r *Registry) Insert(p Patient) {
	r.records = append(r.records, p)
	r.count++
}

// Remove deletes the first record with the given ID and reports whether a
// record was removed.
func (r *Registry) Remove(id string) bool {
	for i := range r.records {
		if r.records[i].ID != id {
			continue
		}
		copy(r.records[i:], r.records[i+1:])
		r.records[len(r.records)-1] = Patient{}
		r.records = r.records[:len(r.records)-1]
		r.count--
		return true
	}
	return false
}

// Find returns the first record with the given ID.
func (r *Registry) Find(id string) (Patient, bool) {
	for i := range r.records {
		if r.records[i].ID == id {
			return r.records[i], true
		}
	}
	return Patient{}, false
}

// List returns a copy of every record, front to back.
func (r *Registry) List() []Patient {
	out := make([]Patient, len(r.records))
	copy(out, r.records)
	return out
}

func (r *Registry) Count() int {
	return r.count
}
