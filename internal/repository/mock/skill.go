package mock

import (
	"context"
	"sort"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/sqlerr"
)

type SkillRepo struct {
	s *Store
}

func (r *SkillRepo) ListSkills(_ context.Context) ([]model.Skill, error) {
	err := r.s.begin("ListSkills")
	defer r.s.end()
	if err != nil {
		return nil, err
	}
	return r.s.skillList(), nil
}

func (s *Store) skillList() []model.Skill {
	out := make([]model.Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *SkillRepo) AddSkill(_ context.Context, req *model.AddSkillRequest) error {
	err := r.s.begin("AddSkill")
	defer r.s.end()
	if err != nil {
		return err
	}

	if _, ok := r.s.skills[req.SkillID]; ok {
		return uniqueViolation("skills")
	}
	r.s.skills[req.SkillID] = model.Skill{ID: req.SkillID, Name: req.Name}
	return nil
}

func (r *SkillRepo) DeleteSkill(_ context.Context, skillID string) error {
	err := r.s.begin("DeleteSkill")
	defer r.s.end()
	if err != nil {
		return err
	}

	if _, ok := r.s.skills[skillID]; !ok {
		return sqlerr.NoRows("skills")
	}
	for _, sp := range r.s.specialists {
		sp.Skills = removeID(sp.Skills, skillID)
	}
	for _, a := range r.s.applicants {
		a.Skills = removeID(a.Skills, skillID)
	}
	delete(r.s.skills, skillID)
	return nil
}
