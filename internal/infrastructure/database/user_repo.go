package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"sojasapi/internal/domain"
	"sojasapi/internal/domain/entities"
	"sojasapi/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

const upsertUserSQL = `
INSERT INTO users (remote_id, username, display_name, nicename, email, token)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (username) DO UPDATE SET
	remote_id = COALESCE(EXCLUDED.remote_id, users.remote_id),
	display_name = EXCLUDED.display_name,
	nicename = EXCLUDED.nicename,
	email = EXCLUDED.email,
	token = EXCLUDED.token,
	updated_at = now()
RETURNING id, is_admin, soy_balance, created_at, updated_at`

const (
	getUserByTokenSQL = `SELECT ` + userColumns + ` FROM users WHERE token = $1`
	getUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	listUsersSQL      = `SELECT ` + userColumns + ` FROM users ORDER BY id`
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) UpsertByUsername(ctx context.Context, user *entities.User) error {
	var (
		soyBalance int32
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, upsertUserSQL,
		ptrToInt8(user.RemoteID),
		user.Username,
		user.DisplayName,
		user.Nicename,
		user.Email,
		user.Token,
	).Scan(&user.ID, &user.IsAdmin, &soyBalance, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	user.SoyBalance = int(soyBalance)
	user.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	user.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *UserRepository) FindByToken(ctx context.Context, token string) (*entities.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, getUserByTokenSQL, token))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("get user by token: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, getUserByIDSQL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entities.User, error) {
	rows, err := r.db.Query(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []entities.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}
