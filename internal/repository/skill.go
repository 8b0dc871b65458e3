package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
)

type SkillRepository struct {
	server *server.Server
}

func NewSkillRepository(s *server.Server) *SkillRepository {
	return &SkillRepository{server: s}
}

func (r *SkillRepository) ListSkills(ctx context.Context) ([]model.Skill, error) {
	return listSkills(ctx, r.server.DB.Pool)
}

func listSkills(ctx context.Context, q querier) ([]model.Skill, error) {
	rows, err := q.Query(ctx, `SELECT id, name FROM skills ORDER BY name, id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query skills")
	}

	skills, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Skill])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan skills")
	}

	return skills, nil
}

func (r *SkillRepository) AddSkill(ctx context.Context, req *model.AddSkillRequest) error {
	_, err := r.server.DB.Pool.Exec(ctx, `INSERT INTO skills (id, name) VALUES ($1, $2)`, req.SkillID, req.Name)
	if err != nil {
		return errors.Wrapf(err, "failed to insert skill %s", req.SkillID)
	}
	return nil
}

// DeleteSkill removes the skill from every specialist and applicant, then
// deletes the row, in one transaction.
func (r *SkillRepository) DeleteSkill(ctx context.Context, skillID string) error {
	return withTx(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, tableSkills, skillID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM specialist_skills WHERE skill_id = $1`, skillID); err != nil {
			return errors.Wrap(err, "failed to detach skill from specialists")
		}

		if _, err := tx.Exec(ctx, `DELETE FROM applicant_skills WHERE skill_id = $1`, skillID); err != nil {
			return errors.Wrap(err, "failed to detach skill from applicants")
		}

		if _, err := tx.Exec(ctx, `DELETE FROM skills WHERE id = $1`, skillID); err != nil {
			return errors.Wrapf(err, "failed to delete skill %s", skillID)
		}
		return nil
	})
}
