package usersvc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, q database.Querier, u *model.User) error
	ByID(ctx context.Context, q database.Querier, id int64) (*model.User, error)
	All(ctx context.Context, q database.Querier) ([]model.User, error)
	ExistsByEmail(ctx context.Context, q database.Querier, email string) (bool, error)
	ExistsByEmailAndIDNot(ctx context.Context, q database.Querier, email string, id int64) (bool, error)
	Update(ctx context.Context, q database.Querier, u *model.User) error
	Delete(ctx context.Context, q database.Querier, id int64) error
}

type Service interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, req model.CreateUserReq) (*model.User, error)

	// Update applies a partial update; only keys present in the map change.
	Update(ctx context.Context, update map[string]string, id int64) (*model.User, error)

	Delete(ctx context.Context, id int64) error
}

type service struct {
	db database.Conn
	r  Repo
}

func New(db database.Conn, r Repo) Service { return &service{db: db, r: r} }

func (s *service) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("user with id %d not found", id))
		}
		return nil, err
	}
	return u, nil
}

func (s *service) All(ctx context.Context) ([]model.User, error) {
	us, err := s.r.All(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if us == nil {
		us = []model.User{}
	}
	return us, nil
}

func (s *service) Create(ctx context.Context, req model.CreateUserReq) (*model.User, error) {
	taken, err := s.r.ExistsByEmail(ctx, s.db, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.AlreadyExists("user with email " + req.Email + " already exists")
	}

	u := &model.User{Name: req.Name, Email: req.Email}
	if err := s.r.Create(ctx, s.db, u); err != nil {
		// The unique index closes the gap between the check and the insert.
		if isUniqueViolation(err) {
			return nil, apperr.AlreadyExists("user with email " + req.Email + " already exists")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, update map[string]string, id int64) (u *model.User, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	u, err = s.r.ByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("user with id %d not found", id))
		}
		return nil, err
	}

	if name, ok := update["name"]; ok {
		if strings.TrimSpace(name) == "" {
			return nil, apperr.Validation("a blank string was supplied for the name update")
		}
		u.Name = name
	}
	if email, ok := update["email"]; ok {
		if strings.TrimSpace(email) == "" {
			return nil, apperr.Validation("a blank string was supplied for the email update")
		}
		taken, terr := s.r.ExistsByEmailAndIDNot(ctx, tx, email, id)
		if terr != nil {
			err = terr
			return nil, err
		}
		if taken {
			return nil, apperr.AlreadyExists("user with email " + email + " already exists")
		}
		u.Email = email
	}

	if err = s.r.Update(ctx, tx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.AlreadyExists("user with email " + u.Email + " already exists")
		}
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.r.Delete(ctx, s.db, id)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
