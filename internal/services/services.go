package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/types"
)

// API is the subset of the portal client the services rely on.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, body, out any) error
}

// Services bundles every endpoint binding over one authenticated client.
type Services struct {
	Users        *UserService
	Jobs         *JobService
	Applications *ApplicationService
	Courses      *CourseService
	Companies    *CompanyService
}

func New(api API) *Services {
	return &Services{
		Users:        NewUserService(api),
		Jobs:         NewJobService(api),
		Applications: NewApplicationService(api),
		Courses:      NewCourseService(api),
		Companies:    NewCompanyService(api),
	}
}

// path joins escaped segments into an API path.
func path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	return "/" + strings.Join(escaped, "/")
}

// rolePath prefixes segments with the role, rejecting unknown roles
// before any request is sent.
func rolePath(role types.Role, segments ...string) (string, error) {
	parsed, ok := types.ParseRole(string(role))
	if !ok {
		return "", apperror.New(apperror.KindValidation, "unknown role", nil)
	}
	return path(append([]string{string(parsed)}, segments...)...), nil
}

func requireID(id, what string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.New(apperror.KindValidation, what+" is required", nil)
	}
	return nil
}
