package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/deppfellow/hr-manager/internal/model"
	"github.com/deppfellow/hr-manager/internal/server"
)

type PackRepository struct {
	server *server.Server
}

func NewPackRepository(s *server.Server) *PackRepository {
	return &PackRepository{server: s}
}

// snapshotRead makes the three lists of a pack see the same committed state.
var snapshotRead = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// GetPack reads every specialist, applicant and skill in one read-only
// REPEATABLE READ transaction. A bind or delete committed meanwhile is
// either fully visible or not at all.
func (r *PackRepository) GetPack(ctx context.Context) (*model.Pack, error) {
	pack := &model.Pack{}

	err := pgx.BeginTxFunc(ctx, r.server.DB.Pool, snapshotRead, func(tx pgx.Tx) error {
		var err error
		if pack.Specialists, err = listSpecialists(ctx, tx); err != nil {
			return err
		}
		if pack.Applicants, err = listApplicants(ctx, tx); err != nil {
			return err
		}
		pack.Skills, err = listSkills(ctx, tx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pack")
	}

	return pack, nil
}
