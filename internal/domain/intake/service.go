package intake

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// maxIDAttempts bounds retries when a generated short ID collides.
const maxIDAttempts = 16

// DoctorSource supplies the doctor list for assignment runs.
type DoctorSource interface {
	ListDoctors(ctx context.Context) ([]Doctor, error)
}

// Service owns the shared registry and queues for one hosting process. All
// access to them goes through mu.
type Service struct {
	mu       sync.Mutex
	registry *Registry
	routine  *RoutineQueue
	urgent   *UrgencyQueue

	doctors DoctorSource
	logger  zerolog.Logger
}

func NewService(doctors DoctorSource, logger zerolog.Logger) *Service {
	return &Service{
		registry: NewRegistry(),
		routine:  NewRoutineQueue(),
		urgent:   NewUrgencyQueue(),
		doctors:  doctors,
		logger:   logger.With().Str("component", "intake").Logger(),
	}
}

// -- Patients --

func (s *Service) CreatePatient(_ context.Context, p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age != nil && *p.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	if p.Priority == 0 {
		p.Priority = DefaultPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		id, err := s.freshID()
		if err != nil {
			return err
		}
		p.ID = id
	} else if _, exists := s.registry.Find(p.ID); exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePatient, p.ID)
	}

	s.registry.Insert(*p)
	return nil
}

func (s *Service) freshID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := NewPatientID()
		if _, taken := s.registry.Find(id); !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not allocate a free patient id after %d attempts", maxIDAttempts)
}

func (s *Service) GetPatient(_ context.Context, id string) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.registry.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &p, nil
}

// DeletePatient removes the record and any queue entries for it.
func (s *Service) DeletePatient(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.Remove(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	dropped := s.routine.Remove(id) + s.urgent.Remove(id)
	if dropped > 0 {
		s.logger.Debug().
			Str("patient_id", id).
			Int("queue_entries", dropped).
			Msg("queued patient deleted")
	}
	return nil
}

func (s *Service) ListPatients(_ context.Context, limit, offset int) ([]Patient, int, error) {
	s.mu.Lock()
	all := s.registry.List()
	s.mu.Unlock()

	total := len(all)
	if offset >= total {
		return []Patient{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

// SearchPatients matches q case-insensitively against patient names. An empty
// query matches nothing.
func (s *Service) SearchPatients(_ context.Context, q string) []Patient {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []Patient{}
	}

	s.mu.Lock()
	all := s.registry.List()
	s.mu.Unlock()

	result := make([]Patient, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) {
			result = append(result, p)
		}
	}
	return result
}

func (s *Service) CountPatients(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Count()
}

// -- Queues --

// EnqueuePatient admits a registered patient into the urgency queue when
// urgent is set, otherwise into the routine queue. A zero priority falls back
// to the patient's stored priority. The same patient may be queued more than
// once.
func (s *Service) EnqueuePatient(_ context.Context, id string, urgent bool, priority int) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.registry.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if urgent {
		if priority == 0 {
			priority = p.Priority
		}
		if priority == 0 {
			priority = DefaultPriority
		}
		s.urgent.Enqueue(p, priority)
	} else {
		s.routine.Enqueue(p)
	}

	s.logger.Debug().
		Str("patient_id", p.ID).
		Bool("urgent", urgent).
		Int("priority", priority).
		Msg("patient queued")
	return &p, nil
}

func (s *Service) QueueStatus(_ context.Context) *QueueStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &QueueStatus{
		Regular:       s.routine.List(),
		Emergency:     s.urgent.Entries(),
		RegularSize:   s.routine.Size(),
		EmergencySize: s.urgent.Size(),
	}
	if p, ok := s.routine.Peek(); ok {
		st.NextRegular = &p
	}
	if p, ok := s.urgent.Peek(); ok {
		st.NextEmergency = &p
	}
	return st
}

// Next serves one patient, taking from the urgency queue before the routine
// queue. It returns ErrEmptyCollection when both are empty.
func (s *Service) Next(_ context.Context) (*Patient, QueueKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.urgent.Dequeue(); ok {
		return &p, QueueUrgent, nil
	}
	if p, ok := s.routine.Dequeue(); ok {
		return &p, QueueRoutine, nil
	}
	return nil, "", ErrEmptyCollection
}

// -- Assignment --

// Assign runs the greedy engine over a snapshot of both shared queues. The
// shared queues themselves are not drained.
func (s *Service) Assign(ctx context.Context) (*Assignments, error) {
	doctors, err := s.doctors.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}

	start := time.Now()
	s.mu.Lock()
	engine := NewEngine(s.registry)
	for _, entry := range s.urgent.Entries() {
		engine.Admit(entry.Patient, true, entry.Priority)
	}
	for _, p := range s.routine.List() {
		engine.Admit(p, false, 0)
	}
	result, err := engine.Assign(doctors)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn().Err(err).Int("doctors", len(doctors)).Msg("assignment rejected")
		return nil, err
	}

	s.logger.Info().
		Int("patients", result.Total()).
		Int("doctors", len(doctors)).
		Dur("elapsed", time.Since(start)).
		Msg("assignment run complete")
	return result, nil
}

// Stats summarises registry, queues and roster for the dashboard.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	doctors, err := s.doctors.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}

	s.mu.Lock()
	st := &Stats{
		TotalPatients:      s.registry.Count(),
		RegularQueueSize:   s.routine.Size(),
		EmergencyQueueSize: s.urgent.Size(),
	}
	s.mu.Unlock()

	st.TotalDoctors = len(doctors)
	for _, d := range doctors {
		if d.Available {
			st.AvailableDoctors++
		}
	}
	return st, nil
}
