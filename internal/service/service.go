// Package service holds the operations behind every route.
//
// A service validates its request before any statement is issued, calls
// the repository and turns storage failures into *errs.HTTPError values:
// client-kind (4xx) for bad input, unknown targets and violated
// constraints, internal-kind (500) for everything else.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/hr-manager/internal/errs"
	"github.com/deppfellow/hr-manager/internal/sqlerr"
)

// fail classifies err and logs it through the request logger in ctx.
func fail(ctx context.Context, op string, err error) error {
	mapped := sqlerr.HandleError(err)

	log := zerolog.Ctx(ctx)
	if errs.KindOf(mapped) == errs.KindClient {
		log.Warn().Err(err).Str("operation", op).Msg("operation rejected")
	} else {
		log.Error().Stack().Err(err).Str("operation", op).Msg("operation failed")
	}

	return mapped
}
