package mock

import (
	"context"
	"slices"
	"sort"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/sqlerr"
)

type ApplicantRepo struct {
	s *Store
}

func (r *ApplicantRepo) ListApplicants(_ context.Context) ([]model.Applicant, error) {
	err := r.s.begin("ListApplicants")
	defer r.s.end()
	if err != nil {
		return nil, err
	}
	return r.s.applicantList(), nil
}

func (s *Store) applicantList() []model.Applicant {
	out := make([]model.Applicant, 0, len(s.applicants))
	for _, row := range s.applicants {
		a := row.Applicant
		if row.SpecialistID != nil {
			id := *row.SpecialistID
			a.SpecialistID = &id
		}
		a.Skills = slices.Clone(row.Skills)
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ArrivalTime != out[j].ArrivalTime {
			return out[i].ArrivalTime < out[j].ArrivalTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *ApplicantRepo) AddApplicant(_ context.Context, req *model.AddApplicantRequest) error {
	err := r.s.begin("AddApplicant")
	defer r.s.end()
	if err != nil {
		return err
	}

	if _, ok := r.s.applicants[req.ApplicantID]; ok {
		return uniqueViolation("applicants")
	}
	r.s.applicants[req.ApplicantID] = &applicantRow{
		Applicant: model.Applicant{
			ID:          req.ApplicantID,
			Name:        req.Name,
			ArrivalTime: req.ArrivalTime,
			Skills:      []string{},
		},
	}
	return nil
}

func (r *ApplicantRepo) UpdateApplicant(_ context.Context, req *model.UpdateApplicantRequest) error {
	err := r.s.begin("UpdateApplicant")
	defer r.s.end()
	if err != nil {
		return err
	}

	row, ok := r.s.applicants[req.ApplicantID]
	if !ok {
		return sqlerr.NoRows("applicants")
	}
	row.Name = req.Name
	row.ArrivalTime = req.ArrivalTime
	return nil
}

func (r *ApplicantRepo) DeleteApplicant(_ context.Context, applicantID string) error {
	err := r.s.begin("DeleteApplicant")
	defer r.s.end()
	if err != nil {
		return err
	}

	if _, ok := r.s.applicants[applicantID]; !ok {
		return sqlerr.NoRows("applicants")
	}
	delete(r.s.applicants, applicantID)
	return nil
}

func (r *ApplicantRepo) BindToSpecialist(_ context.Context, applicantID, specialistID string) error {
	err := r.s.begin("BindToSpecialist")
	defer r.s.end()
	if err != nil {
		return err
	}

	row, ok := r.s.applicants[applicantID]
	if !ok {
		return sqlerr.NoRows("applicants")
	}
	if _, ok := r.s.specialists[specialistID]; !ok {
		return foreignKeyViolation("applicants", "specialist_id")
	}
	id := specialistID
	row.SpecialistID = &id
	row.seq = r.s.next()
	return nil
}

func (r *ApplicantRepo) AddSkill(_ context.Context, applicantID, skillID string) error {
	err := r.s.begin("AddApplicantSkill")
	defer r.s.end()
	if err != nil {
		return err
	}

	row, ok := r.s.applicants[applicantID]
	if !ok {
		return sqlerr.NoRows("applicants")
	}
	if _, ok := r.s.skills[skillID]; !ok {
		return foreignKeyViolation("applicant_skills", "skill_id")
	}
	if !slices.Contains(row.Skills, skillID) {
		row.Skills = append(row.Skills, skillID)
	}
	return nil
}

func (r *ApplicantRepo) ResetSkills(_ context.Context, applicantID string) error {
	err := r.s.begin("ResetApplicantSkills")
	defer r.s.end()
	if err != nil {
		return err
	}

	row, ok := r.s.applicants[applicantID]
	if !ok {
		return sqlerr.NoRows("applicants")
	}
	row.Skills = []string{}
	return nil
}
