package userrepo

import (
	"context"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, q database.Querier, u *model.User) error
	ByID(ctx context.Context, q database.Querier, id int64) (*model.User, error)
	All(ctx context.Context, q database.Querier) ([]model.User, error)
	ExistsByEmail(ctx context.Context, q database.Querier, email string) (bool, error)
	ExistsByEmailAndIDNot(ctx context.Context, q database.Querier, email string, id int64) (bool, error)
	Update(ctx context.Context, q database.Querier, u *model.User) error
	Delete(ctx context.Context, q database.Querier, id int64) error
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) Create(ctx context.Context, q database.Querier, u *model.User) error {
	const sql = `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id`
	return q.QueryRow(ctx, sql, u.Name, u.Email).Scan(&u.ID)
}

func (r *repo) ByID(ctx context.Context, q database.Querier, id int64) (*model.User, error) {
	const sql = `
		SELECT id, name, email
		FROM users
		WHERE id = $1`
	u := &model.User{}
	if err := q.QueryRow(ctx, sql, id).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) All(ctx context.Context, q database.Querier) ([]model.User, error) {
	const sql = `
		SELECT id, name, email
		FROM users
		ORDER BY id`
	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) ExistsByEmail(ctx context.Context, q database.Querier, email string) (bool, error) {
	const sql = `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE lower(email) = lower($1)
		)`
	var exists bool
	err := q.QueryRow(ctx, sql, email).Scan(&exists)
	return exists, err
}

func (r *repo) ExistsByEmailAndIDNot(ctx context.Context, q database.Querier, email string, id int64) (bool, error) {
	const sql = `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2
		)`
	var exists bool
	err := q.QueryRow(ctx, sql, email, id).Scan(&exists)
	return exists, err
}

func (r *repo) Update(ctx context.Context, q database.Querier, u *model.User) error {
	const sql = `
		UPDATE users
		SET name = $2, email = $3
		WHERE id = $1`
	_, err := q.Exec(ctx, sql, u.ID, u.Name, u.Email)
	return err
}

// Delete removes the user; owned items go with it via FK cascade.
func (r *repo) Delete(ctx context.Context, q database.Querier, id int64) error {
	const sql = `DELETE FROM users WHERE id = $1`
	_, err := q.Exec(ctx, sql, id)
	return err
}
