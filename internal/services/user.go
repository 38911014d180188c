package services

import (
	"context"

	"github.com/careerhub/frontdesk/types"
)

type userEnvelope struct {
	User types.User `json:"user"`
}

// UserService covers the current-user endpoints.
type UserService struct {
	api API
}

func NewUserService(api API) *UserService {
	return &UserService{api: api}
}

// Me fetches the authenticated user.
func (s *UserService) Me(ctx context.Context) (types.User, error) {
	var resp userEnvelope
	if err := s.api.Get(ctx, path("common", "auth", "me"), nil, &resp); err != nil {
		return types.User{}, err
	}
	return resp.User, nil
}

func (s *UserService) Logout(ctx context.Context) error {
	return s.api.Post(ctx, path("common", "auth", "logout"), nil, nil)
}
