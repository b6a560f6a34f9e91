// service/comment/comment_service_test.go
package commentsvc

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
	createFn func(ctx context.Context, c *model.Comment) error
}

func (m *mockRepo) Create(ctx context.Context, q database.Querier, c *model.Comment) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, c)
}

type mockBookingRepo struct {
	byBookerAndItemFn func(ctx context.Context, bookerID, itemID int64) (*model.Booking, error)
}

func (m *mockBookingRepo) ByBookerAndItem(ctx context.Context, q database.Querier, bookerID, itemID int64) (*model.Booking, error) {
	return m.byBookerAndItemFn(ctx, bookerID, itemID)
}

type mockItemRepo struct{}

func (mockItemRepo) ByID(ctx context.Context, q database.Querier, id int64) (*model.Item, error) {
	if id != 1 {
		return nil, pgx.ErrNoRows
	}
	return &model.Item{ID: 1, Name: "Drill", Available: true, OwnerID: 2}, nil
}

type mockUserRepo struct{}

func (mockUserRepo) ByID(ctx context.Context, q database.Querier, id int64) (*model.User, error) {
	if id != 3 {
		return nil, pgx.ErrNoRows
	}
	return &model.User{ID: 3, Name: "Ada", Email: "ada@example.com"}, nil
}

func newService(br *mockBookingRepo, r *mockRepo) Service {
	return New(fakeConn{}, r, br, mockItemRepo{}, mockUserRepo{})
}

func finishedBooking() *model.Booking {
	return &model.Booking{
		ID:     5,
		Start:  time.Now().Add(-48 * time.Hour),
		End:    time.Now().Add(-24 * time.Hour),
		Item:   model.Item{ID: 1, OwnerID: 2},
		Booker: model.User{ID: 3},
		Status: model.BookingApproved,
	}
}

func TestCreate_Success(t *testing.T) {
	var saved *model.Comment
	r := &mockRepo{
		createFn: func(ctx context.Context, c *model.Comment) error {
			c.ID = 11
			saved = c
			return nil
		},
	}
	br := &mockBookingRepo{
		byBookerAndItemFn: func(ctx context.Context, bookerID, itemID int64) (*model.Booking, error) {
			require.Equal(t, int64(3), bookerID)
			require.Equal(t, int64(1), itemID)
			return finishedBooking(), nil
		},
	}
	svc := newService(br, r)

	c, err := svc.Create(context.Background(), model.CreateCommentReq{Text: "worked great"}, 1, 3)
	require.NoError(t, err)
	require.Equal(t, int64(11), c.ID)
	require.Equal(t, "worked great", c.Text)
	require.Equal(t, "Ada", c.AuthorName)
	require.WithinDuration(t, time.Now().UTC(), c.Created, 5*time.Second)
	require.Equal(t, c, saved)
}

func TestCreate_NoBooking(t *testing.T) {
	br := &mockBookingRepo{
		byBookerAndItemFn: func(ctx context.Context, bookerID, itemID int64) (*model.Booking, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := newService(br, &mockRepo{})

	_, err := svc.Create(context.Background(), model.CreateCommentReq{Text: "hi"}, 1, 3)
	require.Equal(t, apperr.KindNotFound, apperr.Code(err))
	require.Equal(t, "booking not found", err.Error())
}

func TestCreate_BookingNotApproved(t *testing.T) {
	b := finishedBooking()
	b.Status = model.BookingWaiting
	br := &mockBookingRepo{
		byBookerAndItemFn: func(ctx context.Context, bookerID, itemID int64) (*model.Booking, error) {
			return b, nil
		},
	}
	svc := newService(br, &mockRepo{})

	_, err := svc.Create(context.Background(), model.CreateCommentReq{Text: "hi"}, 1, 3)
	require.Equal(t, apperr.KindValidation, apperr.Code(err))
}

func TestCreate_BookingNotFinished(t *testing.T) {
	b := finishedBooking()
	b.End = time.Now().Add(24 * time.Hour)
	br := &mockBookingRepo{
		byBookerAndItemFn: func(ctx context.Context, bookerID, itemID int64) (*model.Booking, error) {
			return b, nil
		},
	}
	svc := newService(br, &mockRepo{})

	_, err := svc.Create(context.Background(), model.CreateCommentReq{Text: "hi"}, 1, 3)
	require.Equal(t, apperr.KindValidation, apperr.Code(err))
}

func TestCreate_ItemNotFound(t *testing.T) {
	svc := newService(&mockBookingRepo{}, &mockRepo{})

	_, err := svc.Create(context.Background(), model.CreateCommentReq{Text: "hi"}, 99, 3)
	require.Equal(t, apperr.KindNotFound, apperr.Code(err))
}

func TestCreate_AuthorNotFound(t *testing.T) {
	svc := newService(&mockBookingRepo{}, &mockRepo{})

	_, err := svc.Create(context.Background(), model.CreateCommentReq{Text: "hi"}, 1, 99)
	require.Equal(t, apperr.KindNotFound, apperr.Code(err))
}
