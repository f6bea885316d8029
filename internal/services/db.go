package services

import (
	"context"

	"jobbify/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// DB is the database handle multi-step workflows use: plain queries plus the
// ability to open a transaction. *pgxpool.Pool satisfies it, as do pgxmock
// pools in tests.
type DB interface {
	repositories.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}
