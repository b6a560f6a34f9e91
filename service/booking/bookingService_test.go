// service/booking/booking_service_test.go
package bookingsvc

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/database"
)

type fakeConn struct {
	database.Conn
}

func (fakeConn) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

type fakeTx struct {
	pgx.Tx
}

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type mockRepo struct {
	createFn         func(ctx context.Context, b *model.Booking) error
	byIDFn           func(ctx context.Context, id int64) (*model.Booking, error)
	byIDForUpdateFn  func(ctx context.Context, id int64) (*model.Booking, error)
	updateStatusFn   func(ctx context.Context, id int64, status model.BookingStatus) error
	deleteFn         func(ctx context.Context, id int64) error
	allByBookerFn    func(ctx context.Context, bookerID int64) ([]model.Booking, error)
	listFn           func(name string) ([]model.Booking, error)
	approvedByItems  func(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
	calledOwnerQuery bool
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, q database.Querier, b *model.Booking) error {
	return m.createFn(ctx, b)
}

func (m *mockRepo) ByID(ctx context.Context, q database.Querier, id int64) (*model.Booking, error) {
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) ByIDForUpdate(ctx context.Context, q database.Querier, id int64) (*model.Booking, error) {
	return m.byIDForUpdateFn(ctx, id)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, q database.Querier, id int64, status model.BookingStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockRepo) Delete(ctx context.Context, q database.Querier, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockRepo) AllByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error) {
	if m.allByBookerFn != nil {
		return m.allByBookerFn(ctx, bookerID)
	}
	return m.named("ALL_BOOKER")
}

func (m *mockRepo) CurrentByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error) {
	return m.named("CURRENT_BOOKER")
}

func (m *mockRepo) PastByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error) {
	return m.named("PAST_BOOKER")
}

func (m *mockRepo) FutureByBooker(ctx context.Context, q database.Querier, bookerID int64, now time.Time) ([]model.Booking, error) {
	return m.named("FUTURE_BOOKER")
}

func (m *mockRepo) WaitingByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error) {
	return m.named("WAITING_BOOKER")
}

func (m *mockRepo) RejectedByBooker(ctx context.Context, q database.Querier, bookerID int64) ([]model.Booking, error) {
	return m.named("REJECTED_BOOKER")
}

func (m *mockRepo) AllByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error) {
	m.calledOwnerQuery = true
	return m.named("ALL_ITEMS")
}

func (m *mockRepo) CurrentByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	m.calledOwnerQuery = true
	return m.named("CURRENT_ITEMS")
}

func (m *mockRepo) PastByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	m.calledOwnerQuery = true
	return m.named("PAST_ITEMS")
}

func (m *mockRepo) FutureByItems(ctx context.Context, q database.Querier, itemIDs []int64, now time.Time) ([]model.Booking, error) {
	m.calledOwnerQuery = true
	return m.named("FUTURE_ITEMS")
}

func (m *mockRepo) WaitingByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error) {
	m.calledOwnerQuery = true
	return m.named("WAITING_ITEMS")
}

func (m *mockRepo) RejectedByItems(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error) {
	m.calledOwnerQuery = true
	return m.named("REJECTED_ITEMS")
}

func (m *mockRepo) ApprovedByItemIDs(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Booking, error) {
	return m.approvedByItems(ctx, itemIDs)
}

func (m *mockRepo) named(name string) ([]model.Booking, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(name)
}

type mockUserRepo struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUserRepo) ByID(ctx context.Context, q database.Querier, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}

type mockItemRepo struct {
	byIDFn      func(ctx context.Context, id int64) (*model.Item, error)
	byOwnerIDFn func(ctx context.Context, ownerID int64) ([]model.Item, error)
}

func (m *mockItemRepo) ByID(ctx context.Context, q database.Querier, id int64) (*model.Item, error) {
	return m.byIDFn(ctx, id)
}

func (m *mockItemRepo) ByOwnerID(ctx context.Context, q database.Querier, ownerID int64) ([]model.Item, error) {
	return m.byOwnerIDFn(ctx, ownerID)
}

func knownUser(id int64) *mockUserRepo {
	return &mockUserRepo{
		byIDFn: func(ctx context.Context, got int64) (*model.User, error) {
			if got != id {
				return nil, pgx.ErrNoRows
			}
			return &model.User{ID: id, Name: "User", Email: "user@example.com"}, nil
		},
	}
}

// --- Create ---

func TestCreate_StartNotBeforeEnd(t *testing.T) {
	svc := New(fakeConn{}, &mockRepo{}, knownUser(1), &mockItemRepo{})
	start := time.Now().Add(48 * time.Hour)

	_, err := svc.Create(context.Background(), model.CreateBookingReq{
		ItemID: 1,
		Start:  start,
		End:    start.Add(-24 * time.Hour),
	}, 1)
	require.Equal(t, apperr.KindValidation, apperr.Code(err))

	_, err = svc.Create(context.Background(), model.CreateBookingReq{
		ItemID: 1,
		Start:  start,
		End:    start,
	}, 1)
	require.Equal(t, apperr.KindValidation, apperr.Code(err))
}

func TestCreate_ItemNotFound(t *testing.T) {
	ir := &mockItemRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := New(fakeConn{}, &mockRepo{}, knownUser(1), ir)

	_, err := svc.Create(context.Background(), futureReq(99), 1)
	require.Equal(t, apperr.KindNotFound, apperr.Code(err))
}

func TestCreate_ItemUnavailable(t *testing.T) {
	created := false
	m := &mockRepo{
		createFn: func(ctx context.Context, b *model.Booking) error {
			created = true
			return nil
		},
	}
	ir := &mockItemRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Name: "Drill", Available: false, OwnerID: 2}, nil
		},
	}
	svc := New(fakeConn{}, m, knownUser(1), ir)

	_, err := svc.Create(context.Background(), futureReq(7), 1)
	require.Equal(t, apperr.KindValidation, apperr.Code(err))
	require.Contains(t, err.Error(), "7")
	require.False(t, created, "no booking row must be persisted")
}

func TestCreate_RequesterNotFound(t *testing.T) {
	ir := &mockItemRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Available: true, OwnerID: 2}, nil
		},
	}
	svc := New(fakeConn{}, &mockRepo{}, knownUser(1), ir)

	_, err := svc.Create(context.Background(), futureReq(7), 42)
	require.Equal(t, apperr.KindNotFound, apperr.Code(err))
}

func TestCreate_Success(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, b *model.Booking) error {
			b.ID = 10
			return nil
		},
	}
	ir := &mockItemRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Name: "Drill", Available: true, OwnerID: 2}, nil
		},
	}
	svc := New(fakeConn{}, m, knownUser(1), ir)

	b, err := svc.Create(context.Background(), futureReq(1), 1)
	require.NoError(t, err)
	require.Equal(t, int64(10), b.ID)
	require.Equal(t, model.BookingWaiting, b.Status)
	require.Equal(t, int64(1), b.Item.ID)
	require.Equal(t, int64(1), b.Booker.ID)
}

// --- UpdateStatus ---

func TestUpdateStatus_OnlyOwner(t *testing.T) {
	m := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{
				ID:     id,
				Item:   model.Item{ID: 1, OwnerID: 2},
				Booker: model.User{ID: 1},
				Status: model.BookingWaiting,
			}, nil
		},
	}
	svc := New(fakeConn{}, m, knownUser(1), &mockItemRepo{})

	// The booker cannot approve their own booking.
	_, err := svc.UpdateStatus(context.Background(), 5, true, 1)
	require.Equal(t, apperr.KindValidation, apperr.Code(err))

	_, err = svc.UpdateStatus(context.Background(), 5, false, 1)
	require.Equal(t, apperr.KindValidation, apperr.Code(err))
}

func TestUpdateStatus_OwnerApprovesAndRejects(t *testing.T) {
	var stored model.BookingStatus
	m := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{
				ID:     id,
				Item:   model.Item{ID: 1, OwnerID: 2},
				Booker: model.User{ID: 1},
				Status: model.BookingWaiting,
			}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status model.BookingStatus) error {
			stored = status
			return nil
		},
	}
	svc := New(fakeConn{}, m, knownUser(2), &mockItemRepo{})

	b, err := svc.UpdateStatus(context.Background(), 5, true, 2)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, b.Status)
	require.Equal(t, model.BookingApproved, stored)

	// The transition is repeatable; nothing guards against flipping back.
	b, err = svc.UpdateStatus(context.Background(), 5, false, 2)
	require.NoError(t, err)
	require.Equal(t, model.BookingRejected, b.Status)
	require.Equal(t, model.BookingRejected, stored)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	m := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := New(fakeConn{}, m, knownUser(2), &mockItemRepo{})

	_, err := svc.UpdateStatus(context.Background(), 404, true, 2)
	require.Equal(t, apperr.KindNotFound, apperr.Code(err))
}

// --- Get ---

func TestGet_VisibleToOwnerAndBookerOnly(t *testing.T) {
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{
				ID:     id,
				Item:   model.Item{ID: 1, OwnerID: 2},
				Booker: model.User{ID: 1},
			}, nil
		},
	}
	ur := &mockUserRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	svc := New(fakeConn{}, m, ur, &mockItemRepo{})

	first, err := svc.Get(context.Background(), 5, 1) // booker
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 5, 2) // owner
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 5, 3) // stranger
	require.Equal(t, apperr.KindValidation, apperr.Code(err))

	// Reads have no side effects.
	second, err := svc.Get(context.Background(), 5, 1)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// --- State queries ---

func TestUserBookings_DispatchesByState(t *testing.T) {
	for state, want := range map[string]string{
		"ALL":      "ALL_BOOKER",
		"CURRENT":  "CURRENT_BOOKER",
		"PAST":     "PAST_BOOKER",
		"FUTURE":   "FUTURE_BOOKER",
		"WAITING":  "WAITING_BOOKER",
		"REJECTED": "REJECTED_BOOKER",
	} {
		var got string
		m := &mockRepo{
			listFn: func(name string) ([]model.Booking, error) {
				got = name
				return []model.Booking{{ID: 1}}, nil
			},
		}
		svc := New(fakeConn{}, m, knownUser(1), &mockItemRepo{})

		bs, err := svc.UserBookings(context.Background(), state, 1)
		require.NoError(t, err, state)
		require.Len(t, bs, 1, state)
		require.Equal(t, want, got, state)
	}
}

func TestUserBookings_UnknownState(t *testing.T) {
	svc := New(fakeConn{}, &mockRepo{}, knownUser(1), &mockItemRepo{})

	_, err := svc.UserBookings(context.Background(), "SOMEDAY", 1)
	require.Equal(t, apperr.KindValidation, apperr.Code(err))
	require.Contains(t, err.Error(), "SOMEDAY")
}

func TestUserBookings_UnknownUser(t *testing.T) {
	svc := New(fakeConn{}, &mockRepo{}, knownUser(1), &mockItemRepo{})

	_, err := svc.UserBookings(context.Background(), "ALL", 99)
	require.Equal(t, apperr.KindNotFound, apperr.Code(err))
}

func TestOwnerBookings_NoItemsSkipsQuery(t *testing.T) {
	m := &mockRepo{}
	ir := &mockItemRepo{
		byOwnerIDFn: func(ctx context.Context, ownerID int64) ([]model.Item, error) {
			return nil, nil
		},
	}
	svc := New(fakeConn{}, m, knownUser(1), ir)

	bs, err := svc.OwnerBookings(context.Background(), "ALL", 1)
	require.NoError(t, err)
	require.Empty(t, bs)
	require.NotNil(t, bs)
	require.False(t, m.calledOwnerQuery, "no booking query when the owner has no items")
}

func TestOwnerBookings_DispatchesByState(t *testing.T) {
	ir := &mockItemRepo{
		byOwnerIDFn: func(ctx context.Context, ownerID int64) ([]model.Item, error) {
			return []model.Item{{ID: 1, OwnerID: ownerID}, {ID: 2, OwnerID: ownerID}}, nil
		},
	}
	for state, want := range map[string]string{
		"ALL":      "ALL_ITEMS",
		"CURRENT":  "CURRENT_ITEMS",
		"PAST":     "PAST_ITEMS",
		"FUTURE":   "FUTURE_ITEMS",
		"WAITING":  "WAITING_ITEMS",
		"REJECTED": "REJECTED_ITEMS",
	} {
		var got string
		m := &mockRepo{
			listFn: func(name string) ([]model.Booking, error) {
				got = name
				return nil, nil
			},
		}
		svc := New(fakeConn{}, m, knownUser(1), ir)

		bs, err := svc.OwnerBookings(context.Background(), state, 1)
		require.NoError(t, err, state)
		require.NotNil(t, bs, state)
		require.Equal(t, want, got, state)
	}
}

// --- Delete ---

func TestDelete_OnlyBooker(t *testing.T) {
	deleted := false
	m := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{
				ID:     id,
				Item:   model.Item{ID: 1, OwnerID: 2},
				Booker: model.User{ID: 1},
			}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	ur := &mockUserRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	svc := New(fakeConn{}, m, ur, &mockItemRepo{})

	// Even the item owner cannot delete a booking.
	err := svc.Delete(context.Background(), 5, 2)
	require.Equal(t, apperr.KindValidation, apperr.Code(err))
	require.False(t, deleted)

	err = svc.Delete(context.Background(), 5, 1)
	require.NoError(t, err)
	require.True(t, deleted)
}

// --- Availability windows ---

func TestWindowsByItemIDs(t *testing.T) {
	now := time.Now().UTC()
	day := 24 * time.Hour

	bookings := []model.Booking{
		// item 1: two past, two future, one running
		{ID: 1, Item: model.Item{ID: 1}, Start: now.Add(-10 * day), End: now.Add(-9 * day), Status: model.BookingApproved},
		{ID: 2, Item: model.Item{ID: 1}, Start: now.Add(-4 * day), End: now.Add(-3 * day), Status: model.BookingApproved},
		{ID: 3, Item: model.Item{ID: 1}, Start: now.Add(-1 * day), End: now.Add(1 * day), Status: model.BookingApproved},
		{ID: 4, Item: model.Item{ID: 1}, Start: now.Add(2 * day), End: now.Add(3 * day), Status: model.BookingApproved},
		{ID: 5, Item: model.Item{ID: 1}, Start: now.Add(6 * day), End: now.Add(7 * day), Status: model.BookingApproved},
		// item 2: future only
		{ID: 6, Item: model.Item{ID: 2}, Start: now.Add(5 * day), End: now.Add(6 * day), Status: model.BookingApproved},
	}
	m := &mockRepo{
		approvedByItems: func(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
			require.ElementsMatch(t, []int64{1, 2, 3}, itemIDs)
			return bookings, nil
		},
	}
	svc := New(fakeConn{}, m, knownUser(1), &mockItemRepo{})

	windows, err := svc.WindowsByItemIDs(context.Background(), []int64{1, 2, 3}, now)
	require.NoError(t, err)

	w1 := windows[1]
	require.NotNil(t, w1.Last)
	require.Equal(t, int64(2), w1.Last.ID, "last = latest end before now")
	require.NotNil(t, w1.Next)
	require.Equal(t, int64(4), w1.Next.ID, "next = earliest start after now")

	w2 := windows[2]
	require.Nil(t, w2.Last)
	require.NotNil(t, w2.Next)
	require.Equal(t, int64(6), w2.Next.ID)

	_, ok := windows[3]
	require.False(t, ok, "item without approved bookings has no window")
}

func TestWindowsByItemIDs_EmptySet(t *testing.T) {
	m := &mockRepo{
		approvedByItems: func(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
			t.Fatal("no query expected for an empty item set")
			return nil, nil
		},
	}
	svc := New(fakeConn{}, m, knownUser(1), &mockItemRepo{})

	windows, err := svc.WindowsByItemIDs(context.Background(), nil, time.Now())
	require.NoError(t, err)
	require.Empty(t, windows)
}

func futureReq(itemID int64) model.CreateBookingReq {
	return model.CreateBookingReq{
		ItemID: itemID,
		Start:  time.Now().Add(24 * time.Hour),
		End:    time.Now().Add(48 * time.Hour),
	}
}
