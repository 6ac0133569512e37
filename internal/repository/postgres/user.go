package postgres

import (
	"context"

	"library-cms/internal/domain/user"
	apperrors "library-cms/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var userColumns = []string{"id", "email", "password_hash", "role", "library_id", "created_at", "updated_at"}

type UserRepository struct {
	db querier
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.Pool}
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.LibraryID, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	b := psql.Insert(tableUsers).
		Columns("email", "password_hash", "role", "library_id").
		Values(input.Email, input.PasswordHash, string(input.Role), input.LibraryID).
		Suffix(returning(userColumns))

	row, err := queryRow(ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errUserExists)
		}
		return nil, errFailedCreateUser(err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.getOne(ctx, eqID("id", id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, where sq.Sqlizer) (*user.User, error) {
	row, err := queryRow(ctx, r.db, psql.Select(userColumns...).From(tableUsers).Where(where))
	if err != nil {
		return nil, err
	}
	u, err := scanUser(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, errFailedGetUser(err)
	}
	return u, nil
}
