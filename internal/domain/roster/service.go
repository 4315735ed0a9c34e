package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = strings.TrimSpace(d.Name)
	if d.ID == "" {
		return fmt.Errorf("id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.repo.List(ctx)
}

// Seed inserts doctors that are not already present and returns how many
// were added.
func (s *Service) Seed(ctx context.Context, doctors []*Doctor) (int, error) {
	added := 0
	for _, d := range doctors {
		cp := *d
		err := s.CreateDoctor(ctx, &cp)
		if errors.Is(err, ErrDuplicate) {
			continue
		}
		if err != nil {
			return added, fmt.Errorf("seed doctor %s: %w", d.ID, err)
		}
		added++
	}
	return added, nil
}
