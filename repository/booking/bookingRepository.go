package bookingrepo

import (
	"context"
	"time"

	"shareit/model"
	"shareit/util/database"
)

// Every read returns the booking joined with its item and booker, the shape
// the API serves. All list variants order by start_date descending.
const baseSelect = `
	SELECT b.id, b.start_date, b.end_date, b.status,
	       i.id, i.name, i.description, i.available, i.owner_id, i.request_id,
	       u.id, u.name, u.email
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

type Repo interface {
	Create(ctx context.Context, q database.Querier, b *model.Booking) error
	ByID(ctx context.Context, q database.Querier, id int64) (*model.Booking, error)
	ByIDForUpdate(ctx context.Context, q database.Querier, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, q database.Querier, id int64, status model.BookingStatus) error
	Delete(ctx context.Context, q database.Querier, id int64) error

	// The six fixed booker-side state predicates.
	AllByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error)
	CurrentByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error)
	PastByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error)
	FutureByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error)
	WaitingByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error)
	RejectedByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error)

	// The same six predicates over an owner's item set.
	AllByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error)
	CurrentByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error)
	PastByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error)
	FutureByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error)
	WaitingByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error)
	RejectedByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error)

	// ApprovedByItemIDs feeds the availability-window reduction: one batch
	// load for the whole item set instead of a query per item.
	ApprovedByItemIDs(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error)

	ByBookerAndItem(ctx context.Context, q database.Querier, bookerID, itemID int64) (*model.Booking, error)
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) Create(ctx context.Context, q database.Querier, b *model.Booking) error {
	const sql = `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return q.QueryRow(ctx, sql, b.Start, b.End, b.Item.ID, b.Booker.ID, b.Status).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, q database.Querier, id int64) (*model.Booking, error) {
	return r.one(ctx, q, baseSelect+` WHERE b.id = $1`, id)
}

// ByIDForUpdate locks the booking row so a concurrent status flip and delete
// cannot interleave.
func (r *repo) ByIDForUpdate(ctx context.Context, q database.Querier, id int64) (*model.Booking, error) {
	return r.one(ctx, q, baseSelect+` WHERE b.id = $1 FOR UPDATE OF b`, id)
}

func (r *repo) UpdateStatus(ctx context.Context, q database.Querier, id int64, status model.BookingStatus) error {
	const sql = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1`
	_, err := q.Exec(ctx, sql, id, status)
	return err
}

func (r *repo) Delete(ctx context.Context, q database.Querier, id int64) error {
	const sql = `DELETE FROM bookings WHERE id = $1`
	_, err := q.Exec(ctx, sql, id)
	return err
}

func (r *repo) AllByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.booker_id = $1
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, bookerID)
}

func (r *repo) CurrentByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.booker_id = $1
		AND b.start_date < $2 AND b.end_date > $2
		AND b.status = 'APPROVED'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, bookerID, now)
}

func (r *repo) PastByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.booker_id = $1
		AND b.end_date < $2
		AND b.status = 'APPROVED'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, bookerID, now)
}

func (r *repo) FutureByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.booker_id = $1
		AND b.start_date > $2
		AND b.status = 'APPROVED'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, bookerID, now)
}

func (r *repo) WaitingByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.booker_id = $1
		AND b.status = 'WAITING'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, bookerID)
}

func (r *repo) RejectedByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.booker_id = $1
		AND b.status = 'REJECTED'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, bookerID)
}

func (r *repo) AllByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.item_id = ANY($1)
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, itemIDs)
}

func (r *repo) CurrentByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.item_id = ANY($1)
		AND b.start_date < $2 AND b.end_date > $2
		AND b.status = 'APPROVED'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, itemIDs, now)
}

func (r *repo) PastByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.item_id = ANY($1)
		AND b.end_date < $2
		AND b.status = 'APPROVED'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, itemIDs, now)
}

func (r *repo) FutureByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.item_id = ANY($1)
		AND b.start_date > $2
		AND b.status = 'APPROVED'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, itemIDs, now)
}

func (r *repo) WaitingByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.item_id = ANY($1)
		AND b.status = 'WAITING'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, itemIDs)
}

func (r *repo) RejectedByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.item_id = ANY($1)
		AND b.status = 'REJECTED'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, itemIDs)
}

func (r *repo) ApprovedByItemIDs(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error) {
	sql := baseSelect + `
		WHERE b.item_id = ANY($1)
		AND b.status = 'APPROVED'
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, sql, itemIDs)
}

func (r *repo) ByBookerAndItem(ctx context.Context, q database.Querier, bookerID, itemID int64) (*model.Booking, error) {
	return r.one(ctx, q, baseSelect+` WHERE b.booker_id = $1 AND b.item_id = $2`, bookerID, itemID)
}

func (r *repo) one(ctx context.Context, q database.Querier, sql string, args ...any) (*model.Booking, error) {
	b := &model.Booking{}
	err := q.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.Start, &b.End, &b.Status,
		&b.Item.ID, &b.Item.Name, &b.Item.Description, &b.Item.Available, &b.Item.OwnerID, &b.Item.RequestID,
		&b.Booker.ID, &b.Booker.Name, &b.Booker.Email,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) list(ctx context.Context, q database.Querier, sql string, args ...any) ([]model.Booking, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.Status,
			&b.Item.ID, &b.Item.Name, &b.Item.Description, &b.Item.Available, &b.Item.OwnerID, &b.Item.RequestID,
			&b.Booker.ID, &b.Booker.Name, &b.Booker.Email,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
