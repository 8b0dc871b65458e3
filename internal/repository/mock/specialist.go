package mock

import (
	"context"
	"slices"
	"sort"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/sqlerr"
)

type SpecialistRepo struct {
	s *Store
}

func (r *SpecialistRepo) ListSpecialists(_ context.Context) ([]model.Specialist, error) {
	err := r.s.begin("ListSpecialists")
	defer r.s.end()
	if err != nil {
		return nil, err
	}
	return r.s.specialistList(), nil
}

// specialistList expects the store lock to be held.
func (s *Store) specialistList() []model.Specialist {
	out := make([]model.Specialist, 0, len(s.specialists))
	for _, row := range s.specialists {
		sp := row.Specialist
		sp.Applicants = s.applicantIDsOf(sp.ID)
		sp.Skills = slices.Clone(row.Skills)
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *SpecialistRepo) AddSpecialist(_ context.Context, req *model.AddSpecialistRequest) error {
	err := r.s.begin("AddSpecialist")
	defer r.s.end()
	if err != nil {
		return err
	}

	if _, ok := r.s.specialists[req.SpecialistID]; ok {
		return uniqueViolation("specialists")
	}
	r.s.specialists[req.SpecialistID] = &specialistRow{
		Specialist: model.Specialist{
			ID:         req.SpecialistID,
			Name:       req.Name,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Applicants: []string{},
			Skills:     []string{},
		},
	}
	return nil
}

func (r *SpecialistRepo) UpdateSpecialist(_ context.Context, req *model.UpdateSpecialistRequest) error {
	err := r.s.begin("UpdateSpecialist")
	defer r.s.end()
	if err != nil {
		return err
	}

	row, ok := r.s.specialists[req.SpecialistID]
	if !ok {
		return sqlerr.NoRows("specialists")
	}
	row.Name = req.Name
	row.StartTime = req.StartTime
	row.EndTime = req.EndTime
	return nil
}

func (r *SpecialistRepo) DeleteSpecialist(_ context.Context, specialistID string) error {
	err := r.s.begin("DeleteSpecialist")
	defer r.s.end()
	if err != nil {
		return err
	}

	if _, ok := r.s.specialists[specialistID]; !ok {
		return sqlerr.NoRows("specialists")
	}
	for _, a := range r.s.applicants {
		if a.SpecialistID != nil && *a.SpecialistID == specialistID {
			a.SpecialistID = nil
		}
	}
	delete(r.s.specialists, specialistID)
	return nil
}

func (r *SpecialistRepo) AddSkill(_ context.Context, specialistID, skillID string) error {
	err := r.s.begin("AddSpecialistSkill")
	defer r.s.end()
	if err != nil {
		return err
	}

	row, ok := r.s.specialists[specialistID]
	if !ok {
		return sqlerr.NoRows("specialists")
	}
	if _, ok := r.s.skills[skillID]; !ok {
		return foreignKeyViolation("specialist_skills", "skill_id")
	}
	if !slices.Contains(row.Skills, skillID) {
		row.Skills = append(row.Skills, skillID)
	}
	return nil
}

func (r *SpecialistRepo) ResetSkills(_ context.Context, specialistID string) error {
	err := r.s.begin("ResetSpecialistSkills")
	defer r.s.end()
	if err != nil {
		return err
	}

	row, ok := r.s.specialists[specialistID]
	if !ok {
		return sqlerr.NoRows("specialists")
	}
	row.Skills = []string{}
	return nil
}
