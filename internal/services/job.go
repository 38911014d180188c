package services

import (
	"context"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/filter"
	"github.com/careerhub/frontdesk/types"
)

type jobEnvelope struct {
	Job types.Job `json:"job"`
}

type jobListEnvelope struct {
	Jobs []types.Job `json:"jobs"`
}

// JobService binds the job posting endpoints.
type JobService struct {
	api API
}

func NewJobService(api API) *JobService {
	return &JobService{api: api}
}

// List fetches jobs matching the server-side portion of f. Client-side
// refinement is left to the caller.
func (s *JobService) List(ctx context.Context, f filter.JobFilter) ([]types.Job, error) {
	var resp jobListEnvelope
	if err := s.api.Get(ctx, path("common", "job", "all"), f.Query(), &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (types.Job, error) {
	if err := requireID(id, "job id"); err != nil {
		return types.Job{}, err
	}
	var resp jobEnvelope
	if err := s.api.Get(ctx, path("common", "job", id), nil, &resp); err != nil {
		return types.Job{}, err
	}
	return resp.Job, nil
}

func (s *JobService) Create(ctx context.Context, role types.Role, req types.JobUpsertRequest) (types.Job, error) {
	if err := req.Validate(); err != nil {
		return types.Job{}, apperror.Validation(err)
	}
	p, err := rolePath(role, "job")
	if err != nil {
		return types.Job{}, err
	}
	var resp jobEnvelope
	if err := s.api.Post(ctx, p, req, &resp); err != nil {
		return types.Job{}, err
	}
	return resp.Job, nil
}

func (s *JobService) Update(ctx context.Context, role types.Role, id string, req types.JobUpsertRequest) (types.Job, error) {
	if err := requireID(id, "job id"); err != nil {
		return types.Job{}, err
	}
	if err := req.Validate(); err != nil {
		return types.Job{}, apperror.Validation(err)
	}
	p, err := rolePath(role, "job", id)
	if err != nil {
		return types.Job{}, err
	}
	var resp jobEnvelope
	if err := s.api.Put(ctx, p, req, &resp); err != nil {
		return types.Job{}, err
	}
	return resp.Job, nil
}

func (s *JobService) Delete(ctx context.Context, role types.Role, id string) error {
	if err := requireID(id, "job id"); err != nil {
		return err
	}
	p, err := rolePath(role, "job", id)
	if err != nil {
		return err
	}
	return s.api.Delete(ctx, p, nil, nil)
}
