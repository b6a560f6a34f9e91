package commentsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, q database.Querier, c *model.Comment) error
}

type BookingRepo interface {
	ByBookerAndItem(ctx context.Context, q database.Querier, bookerID, itemID int64) (*model.Booking, error)
}

type ItemRepo interface {
	ByID(ctx context.Context, q database.Querier, id int64) (*model.Item, error)
}

type UserRepo interface {
	ByID(ctx context.Context, q database.Querier, id int64) (*model.User, error)
}

type Service interface {
	// Create stores feedback from a past renter. The author must hold an
	// APPROVED booking on the item whose end is already in the past.
	Create(ctx context.Context, req model.CreateCommentReq, itemID, authorID int64) (*model.Comment, error)
}

type service struct {
	db database.Conn
	r  Repo
	br BookingRepo
	ir ItemRepo
	ur UserRepo
}

func New(db database.Conn, r Repo, br BookingRepo, ir ItemRepo, ur UserRepo) Service {
	return &service{db: db, r: r, br: br, ir: ir, ur: ur}
}

func (s *service) Create(ctx context.Context, req model.CreateCommentReq, itemID, authorID int64) (c *model.Comment, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	item, err := s.ir.ByID(ctx, tx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("item with id %d not found", itemID))
		}
		return nil, err
	}
	author, err := s.ur.ByID(ctx, tx, authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("user with id %d not found", authorID))
		}
		return nil, err
	}

	// A missing booking is reported as not-found, not as a permission
	// failure; one booking per author-item pair is assumed.
	booking, err := s.br.ByBookerAndItem(ctx, tx, authorID, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, err
	}

	now := time.Now().UTC()
	if booking.Status != model.BookingApproved || !booking.End.Before(now) {
		return nil, apperr.Validation(fmt.Sprintf(
			"cannot comment on item with id %d: the rental was not approved or has not finished yet", item.ID))
	}

	c = &model.Comment{
		Text:       req.Text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err = s.r.Create(ctx, tx, c); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
