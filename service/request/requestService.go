package requestsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	itemrepo "shareit/repository/item"
	"shareit/util/apperr"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, q database.Querier, ir *model.ItemRequest) error
	ByID(ctx context.Context, q database.Querier, id int64) (*model.ItemRequest, error)
	ByRequesterID(ctx context.Context, q database.Querier, requesterID int64) ([]model.ItemRequest, error)
	AllExceptRequester(ctx context.Context, q database.Querier, requesterID int64) ([]model.ItemRequest, error)
	Delete(ctx context.Context, q database.Querier, id int64) error
}

type ItemRepo interface {
	ByRequestID(ctx context.Context, q database.Querier, requestID int64) ([]model.ItemShort, error)
	ByRequestIDs(ctx context.Context, q database.Querier, requestIDs []int64) ([]itemrepo.RequestedItem, error)
}

type UserRepo interface {
	ByID(ctx context.Context, q database.Querier, id int64) (*model.User, error)
}

type Service interface {
	// Create stamps the request with the server clock; the client cannot
	// supply the creation time.
	Create(ctx context.Context, req model.CreateItemRequestReq, userID int64) (*model.ItemRequest, error)

	Get(ctx context.Context, requestID int64) (*model.ItemRequestWithItems, error)

	// OwnerRequests lists the caller's own requests, newest first, each with
	// the items listed in answer to it.
	OwnerRequests(ctx context.Context, userID int64) ([]model.ItemRequestWithItems, error)

	// AllOther lists everyone else's requests, newest first.
	AllOther(ctx context.Context, userID int64) ([]model.ItemRequest, error)

	Delete(ctx context.Context, userID, requestID int64) error
}

type service struct {
	db database.Conn
	r  Repo
	ir ItemRepo
	ur UserRepo
}

func New(db database.Conn, r Repo, ir ItemRepo, ur UserRepo) Service {
	return &service{db: db, r: r, ir: ir, ur: ur}
}

func (s *service) Create(ctx context.Context, req model.CreateItemRequestReq, userID int64) (*model.ItemRequest, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	ir := &model.ItemRequest{
		Description: req.Description,
		RequesterID: userID,
		Created:     time.Now().UTC(),
	}
	if err := s.r.Create(ctx, s.db, ir); err != nil {
		return nil, err
	}
	return ir, nil
}

func (s *service) Get(ctx context.Context, requestID int64) (*model.ItemRequestWithItems, error) {
	ir, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	items, err := s.ir.ByRequestID(ctx, s.db, requestID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.ItemShort{}
	}
	return &model.ItemRequestWithItems{ItemRequest: *ir, Items: items}, nil
}

func (s *service) OwnerRequests(ctx context.Context, userID int64) ([]model.ItemRequestWithItems, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.r.ByRequesterID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return []model.ItemRequestWithItems{}, nil
	}

	requestIDs := make([]int64, 0, len(requests))
	for _, ir := range requests {
		requestIDs = append(requestIDs, ir.ID)
	}
	items, err := s.ir.ByRequestIDs(ctx, s.db, requestIDs)
	if err != nil {
		return nil, err
	}
	itemMap := make(map[int64][]model.ItemShort, len(requests))
	for _, ri := range items {
		itemMap[ri.RequestID] = append(itemMap[ri.RequestID], ri.ItemShort)
	}

	out := make([]model.ItemRequestWithItems, 0, len(requests))
	for _, ir := range requests {
		its := itemMap[ir.ID]
		if its == nil {
			its = []model.ItemShort{}
		}
		out = append(out, model.ItemRequestWithItems{ItemRequest: ir, Items: its})
	}
	return out, nil
}

func (s *service) AllOther(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.r.AllExceptRequester(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []model.ItemRequest{}
	}
	return requests, nil
}

func (s *service) Delete(ctx context.Context, userID, requestID int64) error {
	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.findRequest(ctx, requestID); err != nil {
		return err
	}
	return s.r.Delete(ctx, s.db, requestID)
}

func (s *service) findUser(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("user with id %d not found", userID))
		}
		return nil, err
	}
	return u, nil
}

func (s *service) findRequest(ctx context.Context, requestID int64) (*model.ItemRequest, error) {
	ir, err := s.r.ByID(ctx, s.db, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("request with id %d not found", requestID))
		}
		return nil, err
	}
	return ir, nil
}
