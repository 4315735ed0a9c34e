package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clinicflow/intake/internal/domain/intake"
	"github.com/clinicflow/intake/internal/domain/roster"
)

func assignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Run one assignment pass over a roster file and a patients file",
		Long: `Reads doctors from --roster and patients from --patients, queues every
patient in file order (emergencies by priority, the rest first come first
served) and prints the resulting assignments as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterPath, _ := cmd.Flags().GetString("roster")
			patientsPath, _ := cmd.Flags().GetString("patients")

			doctors, err := roster.LoadFile(rosterPath)
			if err != nil {
				return err
			}
			patients, err := loadPatients(patientsPath)
			if err != nil {
				return err
			}
			result, err := runAssignment(doctors, patients)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().String("roster", "", "YAML/JSON/TOML file with a top-level doctors list")
	cmd.Flags().String("patients", "", "YAML/JSON/TOML file with a top-level patients list")
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("patients")
	return cmd
}

type filePatient struct {
	ID          string `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Condition   string `mapstructure:"condition"`
	IsEmergency bool   `mapstructure:"is_emergency"`
	Priority    int    `mapstructure:"priority"`
}

func loadPatients(path string) ([]intake.Patient, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read patients %s: %w", path, err)
	}

	var file struct {
		Patients []filePatient `mapstructure:"patients"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("decode patients %s: %w", path, err)
	}

	out := make([]intake.Patient, 0, len(file.Patients))
	seen := make(map[string]bool, len(file.Patients))
	for i, fp := range file.Patients {
		if fp.ID == "" {
			return nil, fmt.Errorf("patients %s: entry %d has no id", path, i)
		}
		if seen[fp.ID] {
			return nil, fmt.Errorf("patients %s: patient %s listed twice", path, fp.ID)
		}
		seen[fp.ID] = true

		priority := fp.Priority
		if priority == 0 {
			priority = intake.DefaultPriority
		}
		out = append(out, intake.Patient{
			ID:          fp.ID,
			Name:        fp.Name,
			Condition:   fp.Condition,
			IsEmergency: fp.IsEmergency,
			Priority:    priority,
		})
	}
	return out, nil
}

type assignOutput struct {
	Assignments map[string][]intake.Patient `json:"assignments"`
	Workload    map[string]int              `json:"workload"`
	Order       []intake.Placement          `json:"order"`
	Total       int                         `json:"total"`
}

// runAssignment registers and queues patients in order, then assigns them.
func runAssignment(doctors []*roster.Doctor, patients []intake.Patient) (*assignOutput, error) {
	registry := intake.NewRegistry()
	engine := intake.NewEngine(registry)
	for _, p := range patients {
		registry.Insert(p)
		engine.Admit(p, p.IsEmergency, p.Priority)
	}

	result, err := engine.Assign(toIntakeDoctors(doctors))
	if err != nil {
		return nil, err
	}
	return &assignOutput{
		Assignments: result.ByDoctor,
		Workload:    result.Workload,
		Order:       result.Order,
		Total:       result.Total(),
	}, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
