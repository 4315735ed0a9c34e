package roster

import "time"

// Doctor maps to the doctor table.
type Doctor struct {
	ID             string    `db:"id" json:"id" mapstructure:"id"`
	Name           string    `db:"name" json:"name" mapstructure:"name"`
	Specialization string    `db:"specialization" json:"specialization,omitempty" mapstructure:"specialization"`
	Available      bool      `db:"available" json:"available" mapstructure:"available"`
	CreatedAt      time.Time `db:"created_at" json:"created_at" mapstructure:"-"`
}

// DemoDoctors is the sample roster used when SEED_DEMO is enabled.
func DemoDoctors() []*Doctor {
	return []*Doctor{
		{ID: "ID-7149-16", Name: "Daniel Dea", Specialization: "General Medicine", Available: true},
		{ID: "ID-5643-16", Name: "Kena Fayera", Specialization: "Cardiology", Available: true},
		{ID: "ID-2905-16", Name: "Abdurahman Muktar", Specialization: "Pediatrics", Available: true},
		{ID: "ID-7060-16", Name: "Abel Yeshewalem", Specialization: "Orthopedics", Available: true},
		{ID: "ID-8338-16", Name: "Gersam Mussie", Specialization: "Neurology", Available: true},
		{ID: "ID-8263-16", Name: "Leulekal Nahusenay", Specialization: "Emergency Medicine", Available: true},
	}
}
