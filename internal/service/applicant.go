package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/validation"
)

type ApplicantRepository interface {
	ListApplicants(ctx context.Context) ([]model.Applicant, error)
	AddApplicant(ctx context.Context, req *model.AddApplicantRequest) error
	UpdateApplicant(ctx context.Context, req *model.UpdateApplicantRequest) error
	DeleteApplicant(ctx context.Context, applicantID string) error
	BindToSpecialist(ctx context.Context, applicantID, specialistID string) error
	AddSkill(ctx context.Context, applicantID, skillID string) error
	ResetSkills(ctx context.Context, applicantID string) error
}

type ApplicantService struct {
	repo ApplicantRepository
}

func NewApplicantService(repo ApplicantRepository) *ApplicantService {
	return &ApplicantService{repo: repo}
}

func (s *ApplicantService) ListApplicants(ctx context.Context) ([]model.Applicant, error) {
	applicants, err := s.repo.ListApplicants(ctx)
	if err != nil {
		return nil, fail(ctx, "list applicants", err)
	}
	return applicants, nil
}

func (s *ApplicantService) AddApplicant(ctx context.Context, req *model.AddApplicantRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}
	req.Normalize()

	if err := s.repo.AddApplicant(ctx, req); err != nil {
		return fail(ctx, "add applicant", err)
	}

	zerolog.Ctx(ctx).Info().Str("applicant_id", req.ApplicantID).Msg("applicant added")
	return nil
}

func (s *ApplicantService) UpdateApplicant(ctx context.Context, req *model.UpdateApplicantRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}
	req.Normalize()

	if err := s.repo.UpdateApplicant(ctx, req); err != nil {
		return fail(ctx, "update applicant", err)
	}

	zerolog.Ctx(ctx).Info().Str("applicant_id", req.ApplicantID).Msg("applicant updated")
	return nil
}

func (s *ApplicantService) DeleteApplicant(ctx context.Context, req *model.DeleteApplicantRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := s.repo.DeleteApplicant(ctx, req.ApplicantID); err != nil {
		return fail(ctx, "delete applicant", err)
	}

	zerolog.Ctx(ctx).Info().Str("applicant_id", req.ApplicantID).Msg("applicant deleted")
	return nil
}

// Bind assigns the applicant to a specialist, moving it off any previous one.
func (s *ApplicantService) Bind(ctx context.Context, req *model.BindRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := s.repo.BindToSpecialist(ctx, req.ApplicantID, req.SpecialistID); err != nil {
		return fail(ctx, "bind applicant to specialist", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("applicant_id", req.ApplicantID).
		Str("specialist_id", req.SpecialistID).
		Msg("applicant bound to specialist")
	return nil
}

func (s *ApplicantService) AddSkill(ctx context.Context, req *model.AttachSkillToApplicantRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := s.repo.AddSkill(ctx, req.ApplicantID, req.SkillID); err != nil {
		return fail(ctx, "add skill to applicant", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("applicant_id", req.ApplicantID).
		Str("skill_id", req.SkillID).
		Msg("skill attached to applicant")
	return nil
}

func (s *ApplicantService) ResetSkills(ctx context.Context, req *model.ResetApplicantSkillsRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	if err := s.repo.ResetSkills(ctx, req.ApplicantID); err != nil {
		return fail(ctx, "reset applicant skills", err)
	}

	zerolog.Ctx(ctx).Info().Str("applicant_id", req.ApplicantID).Msg("applicant skills reset")
	return nil
}
