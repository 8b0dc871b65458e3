package mock

import (
	"context"

	"github.com/deppfellow/hr-manager/internal/model"
)

type PackRepo struct {
	s *Store
}

// GetPack builds the three lists under one lock, so a pack never mixes
// states from before and after a write.
func (r *PackRepo) GetPack(_ context.Context) (*model.Pack, error) {
	err := r.s.begin("GetPack")
	defer r.s.end()
	if err != nil {
		return nil, err
	}

	return &model.Pack{
		Specialists: r.s.specialistList(),
		Applicants:  r.s.applicantList(),
		Skills:      r.s.skillList(),
	}, nil
}
