package itemsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"
	"shareit/util/authz"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, q database.Querier, it *model.Item) error
	ByID(ctx context.Context, q database.Querier, id int64) (*model.Item, error)
	ByOwnerID(ctx context.Context, q database.Querier, ownerID int64) ([]model.Item, error)
	Search(ctx context.Context, q database.Querier, text string) ([]model.Item, error)
	Update(ctx context.Context, q database.Querier, it *model.Item) error
	Delete(ctx context.Context, q database.Querier, id int64) error
}

type UserRepo interface {
	ByID(ctx context.Context, q database.Querier, id int64) (*model.User, error)
}

type RequestRepo interface {
	ByID(ctx context.Context, q database.Querier, id int64) (*model.ItemRequest, error)
}

type CommentRepo interface {
	ByItemID(ctx context.Context, q database.Querier, itemID int64) ([]model.Comment, error)
	ByItemIDs(ctx context.Context, q database.Querier, itemIDs []int64) ([]model.Comment, error)
}

// Windows is the slice of the booking service the catalog view needs.
type Windows interface {
	WindowsByItemIDs(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]bookingsvc.Window, error)
}

type Service interface {
	Get(ctx context.Context, id int64) (*model.ItemWithComments, error)

	// OwnerItems returns the caller's items with availability windows and
	// comments, batch-loaded for the whole set.
	OwnerItems(ctx context.Context, ownerID int64) ([]model.ItemWithBookings, error)

	Create(ctx context.Context, req model.CreateItemReq, ownerID int64) (*model.Item, error)
	Update(ctx context.Context, update map[string]string, itemID, ownerID int64) (*model.Item, error)
	Search(ctx context.Context, text string) ([]model.Item, error)
	Delete(ctx context.Context, itemID, ownerID int64) error
}

type service struct {
	db database.Conn
	r  Repo
	ur UserRepo
	rr RequestRepo
	cr CommentRepo
	w  Windows
}

func New(db database.Conn, r Repo, ur UserRepo, rr RequestRepo, cr CommentRepo, w Windows) Service {
	return &service{db: db, r: r, ur: ur, rr: rr, cr: cr, w: w}
}

func (s *service) Get(ctx context.Context, id int64) (*model.ItemWithComments, error) {
	it, err := s.findItem(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.cr.ByItemID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return &model.ItemWithComments{Item: *it, Comments: comments}, nil
}

func (s *service) OwnerItems(ctx context.Context, ownerID int64) ([]model.ItemWithBookings, error) {
	if _, err := s.findUser(ctx, s.db, ownerID); err != nil {
		return nil, err
	}
	items, err := s.r.ByOwnerID(ctx, s.db, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []model.ItemWithBookings{}, nil
	}

	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}
	now := time.Now().UTC()

	windows, err := s.w.WindowsByItemIDs(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	comments, err := s.cr.ByItemIDs(ctx, s.db, itemIDs)
	if err != nil {
		return nil, err
	}
	commentMap := make(map[int64][]model.Comment, len(items))
	for _, c := range comments {
		commentMap[c.ItemID] = append(commentMap[c.ItemID], c)
	}

	out := make([]model.ItemWithBookings, 0, len(items))
	for _, it := range items {
		cs := commentMap[it.ID]
		if cs == nil {
			cs = []model.Comment{}
		}
		w := windows[it.ID]
		out = append(out, model.ItemWithBookings{
			Item:        it,
			LastBooking: w.Last,
			NextBooking: w.Next,
			Comments:    cs,
		})
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, req model.CreateItemReq, ownerID int64) (it *model.Item, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = s.findUser(ctx, tx, ownerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, rerr := s.rr.ByID(ctx, tx, *req.RequestID); rerr != nil {
			if errors.Is(rerr, pgx.ErrNoRows) {
				err = apperr.NotFound(fmt.Sprintf("request with id %d not found", *req.RequestID))
				return nil, err
			}
			err = rerr
			return nil, err
		}
	}

	it = &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err = s.r.Create(ctx, tx, it); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, update map[string]string, itemID, ownerID int64) (it *model.Item, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = s.findUser(ctx, tx, ownerID); err != nil {
		return nil, err
	}
	it, err = s.findItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if err = authz.RequireOwner(it.OwnerID, ownerID, "only the owner can update an item"); err != nil {
		return nil, err
	}

	if name, ok := update["name"]; ok {
		if strings.TrimSpace(name) == "" {
			return nil, apperr.Validation("a blank string was supplied for the name update")
		}
		it.Name = name
	}
	if description, ok := update["description"]; ok {
		if strings.TrimSpace(description) == "" {
			return nil, apperr.Validation("a blank string was supplied for the description update")
		}
		it.Description = description
	}
	if available, ok := update["available"]; ok {
		if strings.TrimSpace(available) == "" {
			return nil, apperr.Validation("a blank string was supplied for the availability update")
		}
		it.Available = strings.EqualFold(available, "true")
	}

	if err = s.r.Update(ctx, tx, it); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Search(ctx context.Context, text string) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.r.Search(ctx, s.db, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *service) Delete(ctx context.Context, itemID, ownerID int64) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = s.findUser(ctx, tx, ownerID); err != nil {
		return err
	}
	it, err := s.findItem(ctx, tx, itemID)
	if err != nil {
		return err
	}
	if err = authz.RequireOwner(it.OwnerID, ownerID, "only the owner can delete an item"); err != nil {
		return err
	}
	if err = s.r.Delete(ctx, tx, itemID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *service) findItem(ctx context.Context, q database.Querier, itemID int64) (*model.Item, error) {
	it, err := s.r.ByID(ctx, q, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("item with id %d not found", itemID))
		}
		return nil, err
	}
	return it, nil
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
