package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/deppfellow/hr-manager/internal/sqlerr"
)

type ApplicantRepository struct {
	server *server.Server
}

func NewApplicantRepository(s *server.Server) *ApplicantRepository {
	return &ApplicantRepository{server: s}
}

// ListApplicants returns every applicant ordered by arrival time.
func (r *ApplicantRepository) ListApplicants(ctx context.Context) ([]model.Applicant, error) {
	return listApplicants(ctx, r.server.DB.Pool)
}

func listApplicants(ctx context.Context, q querier) ([]model.Applicant, error) {
	rows, err := q.Query(ctx, `
		SELECT
			a.id,
			a.name,
			to_char(a.arrival_time, `+timeOfDay+`),
			a.specialist_id,
			ARRAY(
				SELECT aps.skill_id FROM applicant_skills aps
				WHERE aps.applicant_id = a.id
				ORDER BY aps.added_at, aps.skill_id
			)
		FROM applicants a
		ORDER BY a.arrival_time, a.id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query applicants")
	}

	applicants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Applicant, error) {
		var a model.Applicant
		err := row.Scan(&a.ID, &a.Name, &a.ArrivalTime, &a.SpecialistID, &a.Skills)
		a.Skills = nonNil(a.Skills)
		return a, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan applicants")
	}

	return applicants, nil
}

func (r *ApplicantRepository) AddApplicant(ctx context.Context, req *model.AddApplicantRequest) error {
	_, err := r.server.DB.Pool.Exec(ctx, `
		INSERT INTO applicants (id, name, arrival_time)
		VALUES ($1, $2, $3::text::time)`,
		req.ApplicantID, req.Name, req.ArrivalTime)
	if err != nil {
		return errors.Wrapf(err, "failed to insert applicant %s", req.ApplicantID)
	}
	return nil
}

func (r *ApplicantRepository) UpdateApplicant(ctx context.Context, req *model.UpdateApplicantRequest) error {
	tag, err := r.server.DB.Pool.Exec(ctx, `
		UPDATE applicants
		SET name = $2, arrival_time = $3::text::time, updated_at = now()
		WHERE id = $1`,
		req.ApplicantID, req.Name, req.ArrivalTime)
	if err != nil {
		return errors.Wrapf(err, "failed to update applicant %s", req.ApplicantID)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.NoRows(tableApplicants)
	}
	return nil
}

// DeleteApplicant drops the applicant's skills and the row in one
// transaction. Removing the row also removes it from its specialist's list.
func (r *ApplicantRepository) DeleteApplicant(ctx context.Context, applicantID string) error {
	return withTx(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, tableApplicants, applicantID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM applicant_skills WHERE applicant_id = $1`, applicantID); err != nil {
			return errors.Wrap(err, "failed to detach applicant skills")
		}

		if _, err := tx.Exec(ctx, `DELETE FROM applicants WHERE id = $1`, applicantID); err != nil {
			return errors.Wrapf(err, "failed to delete applicant %s", applicantID)
		}
		return nil
	})
}

// BindToSpecialist moves the applicant to specialistID:
//  1. unlink it from its current specialist
//  2. point it at the new specialist and stamp bound_at, which appends it
//     to the end of that specialist's applicant list
//
// A missing specialist fails the foreign key and rolls both steps back.
func (r *ApplicantRepository) BindToSpecialist(ctx context.Context, applicantID, specialistID string) error {
	return withTx(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, tableApplicants, applicantID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			UPDATE applicants
			SET specialist_id = NULL, bound_at = NULL
			WHERE id = $1 AND specialist_id IS NOT NULL`, applicantID); err != nil {
			return errors.Wrap(err, "failed to unbind applicant")
		}

		if _, err := tx.Exec(ctx, `
			UPDATE applicants
			SET specialist_id = $2, bound_at = clock_timestamp(), updated_at = now()
			WHERE id = $1`, applicantID, specialistID); err != nil {
			return errors.Wrapf(err, "failed to bind applicant %s to specialist %s", applicantID, specialistID)
		}
		return nil
	})
}

// AddSkill attaches skillID to the applicant. Attaching twice is a no-op.
func (r *ApplicantRepository) AddSkill(ctx context.Context, applicantID, skillID string) error {
	return withTx(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, tableApplicants, applicantID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO applicant_skills (applicant_id, skill_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, applicantID, skillID); err != nil {
			return errors.Wrapf(err, "failed to attach skill %s", skillID)
		}
		return nil
	})
}

func (r *ApplicantRepository) ResetSkills(ctx context.Context, applicantID string) error {
	return withTx(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, tableApplicants, applicantID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM applicant_skills WHERE applicant_id = $1`, applicantID); err != nil {
			return errors.Wrap(err, "failed to reset applicant skills")
		}
		return nil
	})
}
