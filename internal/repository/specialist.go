package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
	"github.com/deppfellow/hr-manager/internal/sqlerr"
)

type SpecialistRepository struct {
	server *server.Server
}

func NewSpecialistRepository(s *server.Server) *SpecialistRepository {
	return &SpecialistRepository{server: s}
}

// ListSpecialists returns every specialist ordered by start time then name.
// Applicants are listed in bind order, skills in attach order.
func (r *SpecialistRepository) ListSpecialists(ctx context.Context) ([]model.Specialist, error) {
	return listSpecialists(ctx, r.server.DB.Pool)
}

func listSpecialists(ctx context.Context, q querier) ([]model.Specialist, error) {
	rows, err := q.Query(ctx, `
		SELECT
			s.id,
			s.name,
			to_char(s.start_time, `+timeOfDay+`),
			to_char(s.end_time, `+timeOfDay+`),
			ARRAY(
				SELECT a.id FROM applicants a
				WHERE a.specialist_id = s.id
				ORDER BY a.bound_at, a.id
			),
			ARRAY(
				SELECT ss.skill_id FROM specialist_skills ss
				WHERE ss.specialist_id = s.id
				ORDER BY ss.added_at, ss.skill_id
			)
		FROM specialists s
		ORDER BY s.start_time, s.name, s.id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query specialists")
	}

	specialists, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Specialist, error) {
		var s model.Specialist
		err := row.Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.Applicants, &s.Skills)
		s.Applicants = nonNil(s.Applicants)
		s.Skills = nonNil(s.Skills)
		return s, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan specialists")
	}

	return specialists, nil
}

func (r *SpecialistRepository) AddSpecialist(ctx context.Context, req *model.AddSpecialistRequest) error {
	_, err := r.server.DB.Pool.Exec(ctx, `
		INSERT INTO specialists (id, name, start_time, end_time)
		VALUES ($1, $2, $3::text::time, $4::text::time)`,
		req.SpecialistID, req.Name, req.StartTime, req.EndTime)
	if err != nil {
		return errors.Wrapf(err, "failed to insert specialist %s", req.SpecialistID)
	}
	return nil
}

func (r *SpecialistRepository) UpdateSpecialist(ctx context.Context, req *model.UpdateSpecialistRequest) error {
	tag, err := r.server.DB.Pool.Exec(ctx, `
		UPDATE specialists
		SET name = $2, start_time = $3::text::time, end_time = $4::text::time, updated_at = now()
		WHERE id = $1`,
		req.SpecialistID, req.Name, req.StartTime, req.EndTime)
	if err != nil {
		return errors.Wrapf(err, "failed to update specialist %s", req.SpecialistID)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.NoRows(tableSpecialists)
	}
	return nil
}

// DeleteSpecialist unbinds the specialist's applicants, drops its skills and
// then the row itself, in one transaction.
func (r *SpecialistRepository) DeleteSpecialist(ctx context.Context, specialistID string) error {
	return withTx(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, tableSpecialists, specialistID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			UPDATE applicants
			SET specialist_id = NULL, bound_at = NULL, updated_at = now()
			WHERE specialist_id = $1`, specialistID); err != nil {
			return errors.Wrap(err, "failed to unbind applicants")
		}

		if _, err := tx.Exec(ctx, `DELETE FROM specialist_skills WHERE specialist_id = $1`, specialistID); err != nil {
			return errors.Wrap(err, "failed to detach specialist skills")
		}

		if _, err := tx.Exec(ctx, `DELETE FROM specialists WHERE id = $1`, specialistID); err != nil {
			return errors.Wrapf(err, "failed to delete specialist %s", specialistID)
		}
		return nil
	})
}

// AddSkill attaches skillID to the specialist. Attaching twice is a no-op.
func (r *SpecialistRepository) AddSkill(ctx context.Context, specialistID, skillID string) error {
	return withTx(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, tableSpecialists, specialistID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO specialist_skills (specialist_id, skill_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, specialistID, skillID); err != nil {
			return errors.Wrapf(err, "failed to attach skill %s", skillID)
		}
		return nil
	})
}

func (r *SpecialistRepository) ResetSkills(ctx context.Context, specialistID string) error {
	return withTx(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, tableSpecialists, specialistID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM specialist_skills WHERE specialist_id = $1`, specialistID); err != nil {
			return errors.Wrap(err, "failed to reset specialist skills")
		}
		return nil
	})
}
