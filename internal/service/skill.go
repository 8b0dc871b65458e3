package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/validation"
)

type SkillRepository interface {
	ListSkills(ctx context.Context) ([]model.Skill, error)
	AddSkill(ctx context.Context, req *model.AddSkillRequest) error
	DeleteSkill(ctx context.Context, skillID string) error
}

type SkillService struct {
	repo SkillRepository
}

func NewSkillService(repo SkillRepository) *SkillService {
	return &SkillService{repo: repo}
}

func (s *SkillService) ListSkills(ctx context.Context) ([]model.Skill, error) {
	skills, err := s.repo.ListSkills(ctx)
	if err != nil {
		return nil, fail(ctx, "list skills", err)
	}
	return skills, nil
}

func (s *SkillService) AddSkill(ctx context.Context, req *model.AddSkillRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := s.repo.AddSkill(ctx, req); err != nil {
		return fail(ctx, "add skill", err)
	}

	zerolog.Ctx(ctx).Info().Str("skill_id", req.SkillID).Msg("skill added")
	return nil
}

// DeleteSkill removes the skill from every skill list, then the skill itself.
func (s *SkillService) DeleteSkill(ctx context.Context, req *model.DeleteSkillRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := s.repo.DeleteSkill(ctx, req.SkillID); err != nil {
		return fail(ctx, "delete skill", err)
	}

	zerolog.Ctx(ctx).Info().Str("skill_id", req.SkillID).Msg("skill deleted")
	return nil
}
