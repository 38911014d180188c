package services

import (
	"context"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/types"
)

type applicationEnvelope struct {
	Application types.Application `json:"application"`
}

type applicationListEnvelope struct {
	Applications []types.Application `json:"applications"`
}

type applicantListEnvelope struct {
	Applicants []types.Application `json:"applicants"`
}

type statusChangeBody struct {
	ApplicationID string `json:"applicationId"`
	Remarks       string `json:"remarks,omitempty"`
}

// ApplicationService binds the job application endpoints. Status changes
// are posted as given; transition legality is the server's concern.
type ApplicationService struct {
	api API
}

func NewApplicationService(api API) *ApplicationService {
	return &ApplicationService{api: api}
}

// Apply submits the candidate's application. A missing resume blocks the
// request client-side.
func (s *ApplicationService) Apply(ctx context.Context, jobID string, req types.ApplyRequest) error {
	if err := requireID(jobID, "job id"); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return apperror.New(apperror.KindValidation, "please select a resume before applying", err)
	}
	return s.api.Post(ctx, path("candidate", "job", jobID, "apply"), req, nil)
}

// ListMine returns the candidate's own applications.
func (s *ApplicationService) ListMine(ctx context.Context) ([]types.Application, error) {
	var resp applicationListEnvelope
	if err := s.api.Get(ctx, path("candidate", "job", "applied"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Applications, nil
}

// ListApplicants returns the applications received for a job.
func (s *ApplicationService) ListApplicants(ctx context.Context, role types.Role, jobID string) ([]types.Application, error) {
	if err := requireID(jobID, "job id"); err != nil {
		return nil, err
	}
	p, err := rolePath(role, "job", jobID, "applicants")
	if err != nil {
		return nil, err
	}
	var resp applicantListEnvelope
	if err := s.api.Get(ctx, p, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Applicants, nil
}

// Get fetches one application with its status history.
func (s *ApplicationService) Get(ctx context.Context, role types.Role, id string) (types.Application, error) {
	if err := requireID(id, "application id"); err != nil {
		return types.Application{}, err
	}
	p, err := rolePath(role, "job", "application", id)
	if err != nil {
		return types.Application{}, err
	}
	var resp applicationEnvelope
	if err := s.api.Get(ctx, p, nil, &resp); err != nil {
		return types.Application{}, err
	}
	return resp.Application, nil
}

// ChangeStatus moves an applicant into req.Stage via
// /{role}/job/applicant/{action}.
func (s *ApplicationService) ChangeStatus(ctx context.Context, role types.Role, req types.StatusChangeRequest) error {
	if err := req.Validate(); err != nil {
		return apperror.Validation(err)
	}
	meta, ok := req.Stage.Meta()
	if !ok || meta.Action == "" {
		return apperror.New(apperror.KindValidation, "stage cannot be set: "+string(req.Stage), nil)
	}
	p, err := rolePath(role, "job", "applicant", meta.Action)
	if err != nil {
		return err
	}
	body := statusChangeBody{ApplicationID: req.ApplicationID, Remarks: req.Remarks}
	return s.api.Post(ctx, p, body, nil)
}
