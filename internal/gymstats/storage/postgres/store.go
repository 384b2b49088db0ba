// Package postgres is the remote workouts.Repo on top of a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/pkg"
)

// PgxPool is the part of *pgxpool.Pool the store needs; pgxmock implements
// it as well.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

var (
	_ workouts.Repo            = (*Store)(nil)
	_ workouts.ProgressTracker = (*Store)(nil)
)

type Store struct {
	db PgxPool
}

func NewStore(db PgxPool) *Store {
	return &Store{
		db: db,
	}
}

// StoreError carries the postgres error code of a failed call, if any.
type StoreError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: [%s] %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		msg = pgErr.Message
	}
	return &StoreError{
		Op:      op,
		Code:    pkg.PgErrorCode(err),
		Message: msg,
		Err:     err,
	}
}

// notFoundOr reports missing rows and ids that are not uuids as notFound.
func notFoundOr(op string, err, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) || pkg.IsInvalidTextError(err) {
		return notFound
	}
	return storeError(op, err)
}

// inTx runs fn in a transaction, committing when it returns nil.
func (s *Store) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("commit tx: %w", commitErr)
		}
	}()
	return fn(tx)
}
