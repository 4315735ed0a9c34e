package roster

import (
	"fmt"

	"github.com/spf13/viper"
)

type fileDoctor struct {
	ID             string `mapstructure:"id"`
	Name           string `mapstructure:"name"`
	Specialization string `mapstructure:"specialization"`
	Available      *bool  `mapstructure:"available"`
}

// LoadFile reads a roster from a YAML, JSON or TOML file with a top-level
// "doctors" list. Doctors without an "available" key are available.
func LoadFile(path string) ([]*Doctor, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}

	var file struct {
		Doctors []fileDoctor `mapstructure:"doctors"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("decode roster %s: %w", path, err)
	}

	out := make([]*Doctor, 0, len(file.Doctors))
	seen := make(map[string]bool, len(file.Doctors))
	for i, fd := range file.Doctors {
		if fd.ID == "" || fd.Name == "" {
			return nil, fmt.Errorf("roster %s: doctor %d needs id and name", path, i)
		}
		if seen[fd.ID] {
			return nil, fmt.Errorf("roster %s: doctor %s listed twice", path, fd.ID)
		}
		seen[fd.ID] = true

		available := true
		if fd.Available != nil {
			available = *fd.Available
		}
		out = append(out, &Doctor{
			ID:             fd.ID,
			Name:           fd.Name,
			Specialization: fd.Specialization,
			Available:      available,
		})
	}
	return out, nil
}
