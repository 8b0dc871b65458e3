package service

import (
	"context"

	"github.com/deppfellow/hr-manager/internal/model"
)

type PackRepository interface {
	GetPack(ctx context.Context) (*model.Pack, error)
}

// PackService assembles the whole roster.
type PackService struct {
	repo PackRepository
}

func NewPackService(repo PackRepository) *PackService {
	return &PackService{repo: repo}
}

// GetPack returns one consistent view of the roster. Empty lists are
// returned as [] rather than null.
func (s *PackService) GetPack(ctx context.Context) (*model.Pack, error) {
	pack, err := s.repo.GetPack(ctx)
	if err != nil {
		return nil, fail(ctx, "get pack", err)
	}

	if pack.Specialists == nil {
		pack.Specialists = []model.Specialist{}
	}
	if pack.Applicants == nil {
		pack.Applicants = []model.Applicant{}
	}
	if pack.Skills == nil {
		pack.Skills = []model.Skill{}
	}

	return pack, nil
}
