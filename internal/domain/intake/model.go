package intake

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultPriority is the least urgent rank. Patients created without an
// explicit priority get this value.
const DefaultPriority = 5

// Patient is a registry record. Queues hold copies keyed by ID; the registry
// is the only source of truth for mutable fields.
type Patient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Age         *int   `json:"age,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Condition   string `json:"condition,omitempty"`
	IsEmergency bool   `json:"is_emergency"`
	Priority    int    `json:"priority"`
}

// Doctor is read-only input to the assignment engine.
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Available      bool   `json:"available"`
}

// QueueKind names the queue a patient was served from.
type QueueKind string

const (
	QueueRoutine QueueKind = "regular"
	QueueUrgent  QueueKind = "emergency"
)

// UrgentEntry pairs a patient with the rank it was enqueued at.
type UrgentEntry struct {
	Patient  Patient `json:"item"`
	Priority int     `json:"priority"`
}

// Placement records a single decision made during an assignment run.
type Placement struct {
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	Queue     QueueKind `json:"queue"`
}

// Assignments is the result of one engine run.
type Assignments struct {
	ByDoctor map[string][]Patient `json:"assignments"`
	Workload map[string]int       `json:"workload"`
	Order    []Placement          `json:"order"`
}

// Total returns the number of patients placed in the run.
func (a *Assignments) Total() int {
	return len(a.Order)
}

// QueueStatus is a point-in-time view of both shared queues.
type QueueStatus struct {
	Regular       []Patient     `json:"regular_queue"`
	Emergency     []UrgentEntry `json:"emergency_queue"`
	RegularSize   int           `json:"regular_size"`
	EmergencySize int           `json:"emergency_size"`
	NextRegular   *Patient      `json:"next_regular"`
	NextEmergency *Patient      `json:"next_emergency"`
}

// Stats feeds the dashboard.
type Stats struct {
	TotalPatients      int `json:"total_patients"`
	RegularQueueSize   int `json:"regular_queue_size"`
	EmergencyQueueSize int `json:"emergency_queue_size"`
	TotalDoctors       int `json:"total_doctors"`
	AvailableDoctors   int `json:"available_doctors"`
}

// NewPatientID returns a short identifier in the "P" + 3 hex chars form
// used by the intake desk.
func NewPatientID() string {
	return "P" + strings.ToUpper(uuid.NewString()[:3])
}
