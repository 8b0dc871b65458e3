package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/validation"
)

type SpecialistRepository interface {
	ListSpecialists(ctx context.Context) ([]model.Specialist, error)
	AddSpecialist(ctx context.Context, req *model.AddSpecialistRequest) error
	UpdateSpecialist(ctx context.Context, req *model.UpdateSpecialistRequest) error
	DeleteSpecialist(ctx context.Context, specialistID string) error
	AddSkill(ctx context.Context, specialistID, skillID string) error
	ResetSkills(ctx context.Context, specialistID string) error
}

type SpecialistService struct {
	repo SpecialistRepository
}

func NewSpecialistService(repo SpecialistRepository) *SpecialistService {
	return &SpecialistService{repo: repo}
}

func (s *SpecialistService) ListSpecialists(ctx context.Context) ([]model.Specialist, error) {
	specialists, err := s.repo.ListSpecialists(ctx)
	if err != nil {
		return nil, fail(ctx, "list specialists", err)
	}
	return specialists, nil
}

// AddSpecialist creates a specialist. A missing window defaults to the whole day.
func (s *SpecialistService) AddSpecialist(ctx context.Context, req *model.AddSpecialistRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}
	req.Normalize()

	if err := s.repo.AddSpecialist(ctx, req); err != nil {
		return fail(ctx, "add specialist", err)
	}

	zerolog.Ctx(ctx).Info().Str("specialist_id", req.SpecialistID).Msg("specialist added")
	return nil
}

func (s *SpecialistService) UpdateSpecialist(ctx context.Context, req *model.UpdateSpecialistRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}
	req.Normalize()

	if err := s.repo.UpdateSpecialist(ctx, req); err != nil {
		return fail(ctx, "update specialist", err)
	}

	zerolog.Ctx(ctx).Info().Str("specialist_id", req.SpecialistID).Msg("specialist updated")
	return nil
}

// DeleteSpecialist removes the specialist and unbinds its applicants.
func (s *SpecialistService) DeleteSpecialist(ctx context.Context, req *model.DeleteSpecialistRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := s.repo.DeleteSpecialist(ctx, req.SpecialistID); err != nil {
		return fail(ctx, "delete specialist", err)
	}

	zerolog.Ctx(ctx).Info().Str("specialist_id", req.SpecialistID).Msg("specialist deleted")
	return nil
}

// AddSkill attaches a skill. Skills form a set, attaching twice keeps one.
func (s *SpecialistService) AddSkill(ctx context.Context, req *model.AttachSkillToSpecialistRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := s.repo.AddSkill(ctx, req.SpecialistID, req.SkillID); err != nil {
		return fail(ctx, "add skill to specialist", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("specialist_id", req.SpecialistID).
		Str("skill_id", req.SkillID).
		Msg("skill attached to specialist")
	return nil
}

func (s *SpecialistService) ResetSkills(ctx context.Context, req *model.ResetSpecialistSkillsRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := s.repo.ResetSkills(ctx, req.SpecialistID); err != nil {
		return fail(ctx, "reset specialist skills", err)
	}

	zerolog.Ctx(ctx).Info().Str("specialist_id", req.SpecialistID).Msg("specialist skills reset")
	return nil
}
