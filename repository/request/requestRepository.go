package requestrepo

import (
	"context"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, q database.Querier, ir *model.ItemRequest) error
	ByID(ctx context.Context, q database.Querier, id int64) (*model.ItemRequest, error)
	ByRequesterID(ctx context.Context, q database.Querier, requesterID int64) ([]model.ItemRequest, error)
	AllExceptRequester(ctx context.Context, q database.Querier, requesterID int64) ([]model.ItemRequest, error)
	Delete(ctx context.Context, q database.Querier, id int64) error
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) Create(ctx context.Context, q database.Querier, ir *model.ItemRequest) error {
	const sql = `
		INSERT INTO requests (description, requester_id, created)
		VALUES ($1, $2, $3)
		RETURNING id`
	return q.QueryRow(ctx, sql, ir.Description, ir.RequesterID, ir.Created).Scan(&ir.ID)
}

func (r *repo) ByID(ctx context.Context, q database.Querier, id int64) (*model.ItemRequest, error) {
	const sql = `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE id = $1`
	ir := &model.ItemRequest{}
	err := q.QueryRow(ctx, sql, id).Scan(&ir.ID, &ir.Description, &ir.RequesterID, &ir.Created)
	if err != nil {
		return nil, err
	}
	return ir, nil
}

func (r *repo) ByRequesterID(ctx context.Context, q database.Querier, requesterID int64) ([]model.ItemRequest, error) {
	const sql = `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id = $1
		ORDER BY created DESC`
	return r.list(ctx, q, sql, requesterID)
}

func (r *repo) AllExceptRequester(ctx context.Context, q database.Querier, requesterID int64) ([]model.ItemRequest, error) {
	const sql = `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE requester_id <> $1
		ORDER BY created DESC`
	return r.list(ctx, q, sql, requesterID)
}

func (r *repo) Delete(ctx context.Context, q database.Querier, id int64) error {
	const sql = `DELETE FROM requests WHERE id = $1`
	_, err := q.Exec(ctx, sql, id)
	return err
}

func (r *repo) list(ctx context.Context, q database.Querier, sql string, args ...any) ([]model.ItemRequest, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ItemRequest
	for rows.Next() {
		var ir model.ItemRequest
		if err := rows.Scan(&ir.ID, &ir.Description, &ir.RequesterID, &ir.Created); err != nil {
			return nil, err
		}
		out = append(out, ir)
	}
	return out, rows.Err()
}
