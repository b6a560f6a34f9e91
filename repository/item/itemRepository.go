package itemrepo

import (
	"context"

	"shareit/model"
	"shareit/util/database"
)

// RequestedItem pairs the short item shape with the request it fulfils, so
// callers can group items per request in one pass.
type RequestedItem struct {
	model.ItemShort
	RequestID int64
}

type Repo interface {
	Create(ctx context.Context, q database.Querier, it *model.Item) error
	ByID(ctx context.Context, q database.Querier, id int64) (*model.Item, error)
	ByOwnerID(ctx context.Context, q database.Querier, ownerID int64) ([]model.Item, error)
	Search(ctx context.Context, q database.Querier, text string) ([]model.Item, error)
	ByRequestID(ctx context.Context, q database.Querier, requestID int64) ([]model.ItemShort, error)
	ByRequestIDs(ctx context.Context, q database.Querier, requestIDs []int64) ([]RequestedItem, error)
	Update(ctx context.Context, q database.Querier, it *model.Item) error
	Delete(ctx context.Context, q database.Querier, id int64) error
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) Create(ctx context.Context, q database.Querier, it *model.Item) error {
	const sql = `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return q.QueryRow(ctx, sql, it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).Scan(&it.ID)
}

func (r *repo) ByID(ctx context.Context, q database.Querier, id int64) (*model.Item, error) {
	const sql = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1`
	it := &model.Item{}
	err := q.QueryRow(ctx, sql, id).Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) ByOwnerID(ctx context.Context, q database.Querier, ownerID int64) ([]model.Item, error) {
	const sql = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id`
	return r.list(ctx, q, sql, ownerID)
}

// Search matches the text against name or description, case-insensitive, and
// only returns items currently available for booking.
func (r *repo) Search(ctx context.Context, q database.Querier, text string) ([]model.Item, error) {
	const sql = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		AND available = TRUE
		ORDER BY id`
	return r.list(ctx, q, sql, text)
}

func (r *repo) ByRequestID(ctx context.Context, q database.Querier, requestID int64) ([]model.ItemShort, error) {
	const sql = `
		SELECT id, name, owner_id
		FROM items
		WHERE request_id = $1
		ORDER BY id`
	rows, err := q.Query(ctx, sql, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ItemShort
	for rows.Next() {
		var s model.ItemShort
		if err := rows.Scan(&s.ID, &s.Name, &s.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) ByRequestIDs(ctx context.Context, q database.Querier, requestIDs []int64) ([]RequestedItem, error) {
	const sql = `
		SELECT id, name, owner_id, request_id
		FROM items
		WHERE request_id = ANY($1)
		ORDER BY id`
	rows, err := q.Query(ctx, sql, requestIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RequestedItem
	for rows.Next() {
		var ri RequestedItem
		if err := rows.Scan(&ri.ID, &ri.Name, &ri.OwnerID, &ri.RequestID); err != nil {
			return nil, err
		}
		out = append(out, ri)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, q database.Querier, it *model.Item) error {
	const sql = `
		UPDATE items
		SET name = $2, description = $3, available = $4
		WHERE id = $1`
	_, err := q.Exec(ctx, sql, it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) Delete(ctx context.Context, q database.Querier, id int64) error {
	const sql = `DELETE FROM items WHERE id = $1`
	_, err := q.Exec(ctx, sql, id)
	return err
}

func (r *repo) list(ctx context.Context, q database.Querier, sql string, args ...any) ([]model.Item, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
