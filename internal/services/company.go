package services

import (
	"context"

	"github.com/careerhub/frontdesk/types"
)

type companyListEnvelope struct {
	Companies []types.Company `json:"companies"`
}

// CompanyService binds the super-admin company endpoints.
type CompanyService struct {
	api API
}

func NewCompanyService(api API) *CompanyService {
	return &CompanyService{api: api}
}

func (s *CompanyService) List(ctx context.Context) ([]types.Company, error) {
	var resp companyListEnvelope
	if err := s.api.Get(ctx, path("superadmin", "company", "all"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

func (s *CompanyService) Delete(ctx context.Context, id string) error {
	if err := requireID(id, "company id"); err != nil {
		return err
	}
	return s.api.Delete(ctx, path("superadmin", "company", id), nil, nil)
}
