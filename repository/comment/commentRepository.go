package commentrepo

import (
	"context"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, q database.Querier, c *model.Comment) error
	ByItemID(ctx context.Context, q database.Querier, itemID int64) ([]model.Comment, error)
	ByItemIDs(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Comment, error)
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) Create(ctx context.Context, q database.Querier, c *model.Comment) error {
	const sql = `
		INSERT INTO comments (text, item_id, author_id, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return q.QueryRow(ctx, sql, c.Text, c.ItemID, c.AuthorID, c.Created).Scan(&c.ID)
}

func (r *repo) ByItemID(ctx context.Context, q database.Querier, itemID int64) ([]model.Comment, error) {
	const sql = `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.created DESC`
	return r.list(ctx, q, sql, itemID)
}

func (r *repo) ByItemIDs(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Comment, error) {
	const sql = `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ANY($1)
		ORDER BY c.created DESC`
	return r.list(ctx, q, sql, itemIDs)
}

func (r *repo) list(ctx context.Context, q database.Querier, sql string, args ...any) ([]model.Comment, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
