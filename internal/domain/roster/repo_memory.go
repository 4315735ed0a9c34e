package roster

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryRepo struct {
	mu      sync.RWMutex
	doctors []*Doctor
}

// NewMemoryRepo returns a repository holding seed in insertion order.
func NewMemoryRepo(seed []*Doctor) Repository {
	r := &memoryRepo{}
	for _, d := range seed {
		cp := *d
		r.doctors = append(r.doctors, &cp)
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, d *Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.doctors {
		if existing.ID == d.ID {
			return fmt.Errorf("%w: %s", ErrDuplicate, d.ID)
		}
	}
	d.CreatedAt = time.Now()
	cp := *d
	r.doctors = append(r.doctors, &cp)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.doctors {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (r *memoryRepo) List(_ context.Context) ([]*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Doctor, len(r.doctors))
	for i, d := range r.doctors {
		cp := *d
		out[i] = &cp
	}
	return out, nil
}
