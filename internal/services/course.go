package services

import (
	"context"

	"github.com/careerhub/frontdesk/internal/apperror"
	"github.com/careerhub/frontdesk/internal/course"
	"github.com/careerhub/frontdesk/types"
)

type courseEnvelope struct {
	Course types.Course `json:"course"`
}

type courseListEnvelope struct {
	Courses []types.Course `json:"courses"`
}

type enrollmentEnvelope struct {
	Enrollment types.Enrollment `json:"enrollment"`
}

// ErrCourseIncomplete is returned when a course is marked complete before
// every lesson is done.
var ErrCourseIncomplete = apperror.New(apperror.KindConflict, "complete every lesson before completing the course", nil)

// CourseService binds the e-learning endpoints.
type CourseService struct {
	api API
}

func NewCourseService(api API) *CourseService {
	return &CourseService{api: api}
}

func (s *CourseService) List(ctx context.Context) ([]types.Course, error) {
	var resp courseListEnvelope
	if err := s.api.Get(ctx, path("common", "course", "all"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (types.Course, error) {
	if err := requireID(id, "course id"); err != nil {
		return types.Course{}, err
	}
	var resp courseEnvelope
	if err := s.api.Get(ctx, path("common", "course", id), nil, &resp); err != nil {
		return types.Course{}, err
	}
	return resp.Course, nil
}

// Enrollment returns the candidate's enrollment in a course. Not being
// enrolled surfaces as a not-found error.
func (s *CourseService) Enrollment(ctx context.Context, id string) (types.Enrollment, error) {
	if err := requireID(id, "course id"); err != nil {
		return types.Enrollment{}, err
	}
	var resp enrollmentEnvelope
	if err := s.api.Get(ctx, path("candidate", "course", id, "enrollment"), nil, &resp); err != nil {
		return types.Enrollment{}, err
	}
	return resp.Enrollment, nil
}

func (s *CourseService) Enroll(ctx context.Context, id string) error {
	if err := requireID(id, "course id"); err != nil {
		return err
	}
	return s.api.Post(ctx, path("candidate", "course", id, "enroll"), nil, nil)
}

func (s *CourseService) Unenroll(ctx context.Context, id string) error {
	if err := requireID(id, "course id"); err != nil {
		return err
	}
	return s.api.Delete(ctx, path("candidate", "course", id, "enroll"), nil, nil)
}

// CompleteLesson marks one lesson as watched.
func (s *CourseService) CompleteLesson(ctx context.Context, id string, req types.LessonCompleteRequest) error {
	if err := requireID(id, "course id"); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return apperror.Validation(err)
	}
	return s.api.Post(ctx, path("candidate", "course", id, "lesson", "complete"), req, nil)
}

// CompleteCourse re-reads the course and enrollment and only posts the
// completion when every lesson is done.
func (s *CourseService) CompleteCourse(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	enrollment, err := s.Enrollment(ctx, id)
	if err != nil {
		return err
	}
	if !course.CanComplete(c, enrollment) {
		return ErrCourseIncomplete
	}
	return s.api.Post(ctx, path("candidate", "course", id, "complete"), nil, nil)
}

// LessonWatcher returns a progress watcher bound to one lesson of a course.
func (s *CourseService) LessonWatcher(id, lessonTitle string) *course.ProgressWatcher {
	return course.NewProgressWatcher(func(ctx context.Context) error {
		return s.CompleteLesson(ctx, id, types.LessonCompleteRequest{LessonTitle: lessonTitle})
	})
}

func (s *CourseService) Create(ctx context.Context, role types.Role, req types.CourseUpsertRequest) (types.Course, error) {
	if err := req.Validate(); err != nil {
		return types.Course{}, apperror.Validation(err)
	}
	p, err := rolePath(role, "course")
	if err != nil {
		return types.Course{}, err
	}
	var resp courseEnvelope
	if err := s.api.Post(ctx, p, req, &resp); err != nil {
		return types.Course{}, err
	}
	return resp.Course, nil
}

func (s *CourseService) Delete(ctx context.Context, role types.Role, id string) error {
	if err := requireID(id, "course id"); err != nil {
		return err
	}
	p, err := rolePath(role, "course", id)
	if err != nil {
		return err
	}
	return s.api.Delete(ctx, p, nil, nil)
}
