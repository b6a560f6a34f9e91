package bookingsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/authz"
	"shareit/util/database"
)

// Window is the availability context for one item: the approved booking that
// finished most recently and the one starting soonest.
type Window struct {
	Last *model.Booking
	Next *model.Booking
}

type Repo interface {
	Create(ctx context.Context, q database.Querier, b *model.Booking) error
	ByID(ctx context.Context, q database.Querier, id int64) (*model.Booking, error)
	ByIDForUpdate(ctx context.Context, q database.Querier, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, q database.Querier, id int64, status model.BookingStatus) error
	Delete(ctx context.Context, q database.Querier, id int64) error

	AllByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error)
	CurrentByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error)
	PastByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error)
	FutureByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error)
	WaitingByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error)
	RejectedByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error)

	AllByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error)
	CurrentByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error)
	PastByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error)
	FutureByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error)
	WaitingByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error)
	RejectedByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error)

	ApprovedByItemIDs(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error)
}

type UserRepo interface {
	ByID(ctx context.Context, q database.Querier, id int64) (*model.User, error)
}

type ItemRepo interface {
	ByID(ctx context.Context, q database.Querier, id int64) (*model.Item, error)
	ByOwnerID(ctx context.Context, q database.Querier, ownerID int64) ([]model.Item, error)
}

type Service interface {
	// Create persists a WAITING booking for an available item the caller
	// does not need to own. No overlap check against other bookings.
	Create(ctx context.Context, req model.CreateBookingReq, userID int64) (*model.Booking, error)

	// UpdateStatus lets the item owner approve or reject. The transition is
	// repeatable, matching the existing API contract.
	UpdateStatus(ctx context.Context, bookingID int64, approved bool, userID int64) (*model.Booking, error)

	// Get is visible to the item owner and the booker only.
	Get(ctx context.Context, bookingID, userID int64) (*model.Booking, error)

	UserBookings(ctx context.Context, state string, userID int64) ([]model.Booking, error)
	OwnerBookings(ctx context.Context, state string, userID int64) ([]model.Booking, error)

	// Delete is booker-only.
	Delete(ctx context.Context, bookingID, userID int64) error

	// WindowsByItemIDs batch-computes last/next approved bookings for a set
	// of items in a single query.
	WindowsByItemIDs(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]Window, error)
}

type service struct {
	db database.Conn
	r  Repo
	ur UserRepo
	ir ItemRepo
}

func New(db database.Conn, r Repo, ur UserRepo, ir ItemRepo) Service {
	return &service{db: db, r: r, ur: ur, ir: ir}
}

func (s *service) Create(ctx context.Context, req model.CreateBookingReq, userID int64) (b *model.Booking, err error) {
	if !req.Start.Before(req.End) {
		return nil, apperr.Validation("booking start must be before booking end")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	item, err := s.ir.ByID(ctx, tx, req.ItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("item with id %d not found", req.ItemID))
		}
		return nil, err
	}
	if !item.Available {
		return nil, apperr.Validation(fmt.Sprintf("item with id %d is not available for booking", item.ID))
	}

	user, err := s.findUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	b = &model.Booking{
		Start:  req.Start,
		End:    req.End,
		Item:   *item,
		Booker: *user,
		Status: model.BookingWaiting,
	}
	if err = s.r.Create(ctx, tx, b); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, bookingID int64, approved bool, userID int64) (b *model.Booking, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	b, err = s.r.ByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("booking with id %d not found", bookingID))
		}
		return nil, err
	}
	if err = authz.RequireOwner(b.Item.OwnerID, userID, "only the item owner can change the booking status"); err != nil {
		return nil, err
	}

	status := model.BookingRejected
	if approved {
		status = model.BookingApproved
	}
	if err = s.r.UpdateStatus(ctx, tx, bookingID, status); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *service) Get(ctx context.Context, bookingID, userID int64) (*model.Booking, error) {
	if _, err := s.findUser(ctx, s.db, userID); err != nil {
		return nil, err
	}
	b, err := s.r.ByID(ctx, s.db, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("booking with id %d not found", bookingID))
		}
		return nil, err
	}
	if b.Item.OwnerID != userID && b.Booker.ID != userID {
		return nil, apperr.Validation("only the booker or the item owner can view a booking")
	}
	return b, nil
}

func (s *service) UserBookings(ctx context.Context, state string, userID int64) ([]model.Booking, error) {
	if _, err := s.findUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var (
		bs  []model.Booking
		err error
	)
	switch state {
	case "ALL":
		bs, err = s.r.AllByBooker(ctx, s.db, userID)
	case "CURRENT":
		bs, err = s.r.CurrentByBooker(ctx, s.db, userID, now)
	case "PAST":
		bs, err = s.r.PastByBooker(ctx, s.db, userID, now)
	case "FUTURE":
		bs, err = s.r.FutureByBooker(ctx, s.db, userID, now)
	case "WAITING":
		bs, err = s.r.WaitingByBooker(ctx, s.db, userID)
	case "REJECTED":
		bs, err = s.r.RejectedByBooker(ctx, s.db, userID)
	default:
		return nil, apperr.Validation("unknown state: " + state)
	}
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []model.Booking{}
	}
	return bs, nil
}

func (s *service) OwnerBookings(ctx context.Context, state string, userID int64) ([]model.Booking, error) {
	if _, err := s.findUser(ctx, s.db, userID); err != nil {
		return nil, err
	}

	items, err := s.ir.ByOwnerID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	// An owner without items has nothing to query.
	if len(items) == 0 {
		return []model.Booking{}, nil
	}
	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}

	now := time.Now().UTC()
	var bs []model.Booking
	switch state {
	case "ALL":
		bs, err = s.r.AllByItems(ctx, s.db, itemIDs)
	case "CURRENT":
		bs, err = s.r.CurrentByItems(ctx, s.db, itemIDs, now)
	case "PAST":
		bs, err = s.r.PastByItems(ctx, s.db, itemIDs, now)
	case "FUTURE":
		bs, err = s.r.FutureByItems(ctx, s.db, itemIDs, now)
	case "WAITING":
		bs, err = s.r.WaitingByItems(ctx, s.db, itemIDs)
	case "REJECTED":
		bs, err = s.r.RejectedByItems(ctx, s.db, itemIDs)
	default:
		return nil, apperr.Validation("unknown state: " + state)
	}
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []model.Booking{}
	}
	return bs, nil
}

func (s *service) Delete(ctx context.Context, bookingID, userID int64) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	b, err := s.r.ByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound(fmt.Sprintf("booking with id %d not found", bookingID))
		}
		return err
	}
	if _, err = s.findUser(ctx, tx, userID); err != nil {
		return err
	}
	if err = authz.RequireOwner(b.Booker.ID, userID, "only the booker can delete a booking"); err != nil {
		return err
	}
	if err = s.r.Delete(ctx, tx, bookingID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *service) WindowsByItemIDs(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]Window, error) {
	windows := make(map[int64]Window, len(itemIDs))
	if len(itemIDs) == 0 {
		return windows, nil
	}

	bookings, err := s.r.ApprovedByItemIDs(ctx, s.db, itemIDs)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		b := &bookings[i]
		w := windows[b.Item.ID]
		if b.End.Before(now) {
			if w.Last == nil || b.End.After(w.Last.End) {
				w.Last = b
			}
		}
		if b.Start.After(now) {
			if w.Next == nil || b.Start.Before(w.Next.Start) {
				w.Next = b
			}
		}
		windows[b.Item.ID] = w
	}
	return windows, nil
}

func (s *service) findUser(ctx context.Context, q database.Querier, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, q, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("user with id %d not found", userID))
		}
		return nil, err
	}
	return u, nil
}
