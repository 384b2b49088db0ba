package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

func (s *Store) GetUser(ctx context.Context, username string) (_ *auth.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var u auth.User
	if err := s.db.QueryRow(
		ctx,
		`SELECT id::text, username, COALESCE(full_name, ''), COALESCE(email, ''), created_at, updated_at
			FROM users WHERE username = $1`,
		auth.NormalizeUsername(username),
	).Scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, storeError("get user", err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, user auth.User) (_ *auth.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user.Username = auth.NormalizeUsername(user.Username)
	if err := s.db.QueryRow(
		ctx,
		`INSERT INTO users (username, full_name, email)
			VALUES ($1, $2, $3)
		RETURNING id::text, created_at, updated_at`,
		user.Username, user.FullName, user.Email,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		// two first logins of the same user raced; the other one won
		if pkg.IsUniqueViolationError(err) {
			return s.GetUser(ctx, user.Username)
		}
		return nil, storeError("create user", err)
	}
	return &user, nil
}
