package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sgrsensor/internal/client/client"
	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
	"github.com/dmitrijs2005/sgrsensor/internal/client/validator"
)

// UserService manages the accounts of the operator's company.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, u models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	client client.Client
}

func NewUserService(c client.Client) UserService {
	return &userService{client: c}
}

func userPath(id int64) string {
	return fmt.Sprintf("/user/%d", id)
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return decodeList[models.User](s.client.Get(ctx, "/user"))
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := decode[models.User](s.client.Get(ctx, userPath(id)))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update requires a password: the backend re-hashes it on every update.
func (s *userService) Update(ctx context.Context, id int64, u models.UserUpdate) (*models.User, error) {
	if u.Password == "" {
		return nil, &validator.FieldError{Field: "password", Reason: "is required"}
	}
	out, err := decode[models.User](s.client.Put(ctx, userPath(id), u))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return expect(s.client.Delete(ctx, userPath(id)))
}
