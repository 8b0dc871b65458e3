// Package repository holds the SQL for every entity.
//
// Each method is one statement or one transaction against the pgx pool.
// Errors are wrapped with context and left unclassified; the service layer
// maps them with sqlerr.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/deppfellow/hr-manager/internal/sqlerr"
)

// timeOfDay renders a time column the way the API returns it.
const timeOfDay = "'HH24:MI:SS'"

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// withTx runs fn in a transaction that is committed when fn returns nil and
// rolled back otherwise.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, pool, fn)
}

// lockRow takes a row lock on id in table, or returns a not-found error
// naming table. table is always one of the package constants.
func lockRow(ctx context.Context, tx pgx.Tx, table, id string) error {
	var found string
	err := tx.QueryRow(ctx, "SELECT id FROM "+table+" WHERE id = $1 FOR UPDATE", id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlerr.NoRows(table)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to lock %s row", table)
	}
	return nil
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

const (
	tableSpecialists = "specialists"
	tableApplicants  = "applicants"
	tableSkills      = "skills"
)
