package model

import (
	"github.com/deppfellow/hr-manager/internal/validation"
)

// Identifiers are caller supplied. Path identifiers are bound from the URL
// only, the json:"-" tag keeps a body from overriding them.

type AddSpecialistRequest struct {
	SpecialistID string `json:"specialistID" validate:"required,notblank,max=64"`
	Name         string `json:"name" validate:"required,notblank,max=255"`
	StartTime    string `json:"start_time" validate:"omitempty,timeofday"`
	EndTime      string `json:"end_time" validate:"omitempty,timeofday"`
}

func (r *AddSpecialistRequest) Validate() error {
	return validation.Struct(r)
}

// Normalize fills in the default window and brings times to HH:MM:SS.
func (r *AddSpecialistRequest) Normalize() {
	if r.StartTime == "" {
		r.StartTime = DefaultStartTime
	}
	if r.EndTime == "" {
		r.EndTime = DefaultEndTime
	}
	r.StartTime = validation.NormalizeTimeOfDay(r.StartTime)
	r.EndTime = validation.NormalizeTimeOfDay(r.EndTime)
}

type AddApplicantRequest struct {
	ApplicantID string `json:"applicantID" validate:"required,notblank,max=64"`
	Name        string `json:"name" validate:"required,notblank,max=255"`
	ArrivalTime string `json:"arrival_time" validate:"omitempty,timeofday"`
}

func (r *AddApplicantRequest) Validate() error {
	return validation.Struct(r)
}

func (r *AddApplicantRequest) Normalize() {
	if r.ArrivalTime == "" {
		r.ArrivalTime = DefaultArrivalTime
	}
	r.ArrivalTime = validation.NormalizeTimeOfDay(r.ArrivalTime)
}

type AddSkillRequest struct {
	SkillID string `json:"skillID" validate:"required,notblank,max=64"`
	Name    string `json:"name" validate:"required,notblank,max=255"`
}

func (r *AddSkillRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateSpecialistRequest replaces every mutable field of a specialist.
type UpdateSpecialistRequest struct {
	SpecialistID string `param:"specialistID" json:"-" validate:"required,notblank,max=64"`
	Name         string `json:"name" validate:"required,notblank,max=255"`
	StartTime    string `json:"start_time" validate:"required,timeofday"`
	EndTime      string `json:"end_time" validate:"required,timeofday"`
}

func (r *UpdateSpecialistRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateSpecialistRequest) Normalize() {
	r.StartTime = validation.NormalizeTimeOfDay(r.StartTime)
	r.EndTime = validation.NormalizeTimeOfDay(r.EndTime)
}

// UpdateApplicantRequest replaces every mutable field of an applicant.
type UpdateApplicantRequest struct {
	ApplicantID string `param:"applicantID" json:"-" validate:"required,notblank,max=64"`
	Name        string `json:"name" validate:"required,notblank,max=255"`
	ArrivalTime string `json:"arrival_time" validate:"required,timeofday"`
}

func (r *UpdateApplicantRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateApplicantRequest) Normalize() {
	r.ArrivalTime = validation.NormalizeTimeOfDay(r.ArrivalTime)
}

type DeleteSpecialistRequest struct {
	SpecialistID string `param:"specialistID" json:"-" validate:"required,notblank,max=64"`
}

func (r *DeleteSpecialistRequest) Validate() error {
	return validation.Struct(r)
}

type DeleteApplicantRequest struct {
	ApplicantID string `param:"applicantID" json:"-" validate:"required,notblank,max=64"`
}

func (r *DeleteApplicantRequest) Validate() error {
	return validation.Struct(r)
}

type DeleteSkillRequest struct {
	SkillID string `param:"skillID" json:"-" validate:"required,notblank,max=64"`
}

func (r *DeleteSkillRequest) Validate() error {
	return validation.Struct(r)
}

// BindRequest assigns an applicant to a specialist.
type BindRequest struct {
	ApplicantID  string `json:"applicantID" validate:"required,notblank,max=64"`
	SpecialistID string `json:"specialistID" validate:"required,notblank,max=64"`
}

func (r *BindRequest) Validate() error {
	return validation.Struct(r)
}

type AttachSkillToSpecialistRequest struct {
	SkillID      string `json:"skillID" validate:"required,notblank,max=64"`
	SpecialistID string `json:"specialistID" validate:"required,notblank,max=64"`
}

func (r *AttachSkillToSpecialistRequest) Validate() error {
	return validation.Struct(r)
}

type AttachSkillToApplicantRequest struct {
	SkillID     string `json:"skillID" validate:"required,notblank,max=64"`
	ApplicantID string `json:"applicantID" validate:"required,notblank,max=64"`
}

func (r *AttachSkillToApplicantRequest) Validate() error {
	return validation.Struct(r)
}

type ResetSpecialistSkillsRequest struct {
	SpecialistID string `param:"specialistID" json:"-" validate:"required,notblank,max=64"`
}

func (r *ResetSpecialistSkillsRequest) Validate() error {
	return validation.Struct(r)
}

type ResetApplicantSkillsRequest struct {
	ApplicantID string `param:"applicantID" json:"-" validate:"required,notblank,max=64"`
}

func (r *ResetApplicantSkillsRequest) Validate() error {
	return validation.Struct(r)
}

// EmptyRequest is used by read-only routes without parameters.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}
