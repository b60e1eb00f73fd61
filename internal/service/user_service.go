package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-api/internal/model"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Profile(ctx context.Context, id string) (model.Profile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

// UpdateProfile changes name and addresses. Callers may only edit themselves
// unless they are administrators.
func (s *UserService) UpdateProfile(ctx context.Context, actor model.Identity, id string, req model.UpdateUserRequest) (model.Profile, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return model.Profile{}, model.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Addresses != nil {
		for i, address := range *req.Addresses {
			if strings.TrimSpace(address.Street) == "" || strings.TrimSpace(address.City) == "" {
				return model.Profile{}, fmt.Errorf("%w: address %d needs street and city", model.ErrInvalidInput, i)
			}
		}
		user.Addresses = *req.Addresses
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}
