package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ApplyRequest is the candidate's application for a job.
type ApplyRequest struct {
	ResumeURL   string `json:"resumeUrl" validate:"required"`
	CoverLetter string `json:"coverLetter,omitempty"`
}

// Validate checks required fields.
func (r *ApplyRequest) Validate() error {
	return validate.Struct(r)
}

// StatusChangeRequest moves an applicant into a stage.
type StatusChangeRequest struct {
	ApplicationID string `json:"applicationId" validate:"required"`
	Stage         Stage  `json:"stage" validate:"required"`
	Remarks       string `json:"remarks,omitempty"`
}

// Validate checks required fields.
func (r *StatusChangeRequest) Validate() error {
	return validate.Struct(r)
}

// JobUpsertRequest is the create/edit form for a job posting.
type JobUpsertRequest struct {
	Title               string    `json:"title" validate:"required"`
	Location            string    `json:"location" validate:"required"`
	JobType             string    `json:"jobType" validate:"required"`
	Salary              string    `json:"salary,omitempty"`
	Description         string    `json:"description,omitempty"`
	Gender              string    `json:"gender,omitempty"`
	Experience          string    `json:"experience,omitempty"`
	Qualification       string    `json:"qualification,omitempty"`
	CareerLevel         string    `json:"careerLevel,omitempty"`
	Industry            string    `json:"industry,omitempty"`
	City                string    `json:"city,omitempty"`
	Specialisms         []string  `json:"specialisms,omitempty"`
	ApplicationDeadline time.Time `json:"applicationDeadline" validate:"required"`
	IsActive            bool      `json:"isActive"`
}

// Validate checks required fields.
func (r *JobUpsertRequest) Validate() error {
	return validate.Struct(r)
}

// CourseUpsertRequest is the create/edit form for a course.
type CourseUpsertRequest struct {
	Title      string    `json:"title" validate:"required"`
	Level      string    `json:"level" validate:"required"`
	Price      string    `json:"price" validate:"required"`
	Curriculum []Section `json:"curriculum"`
}

// Validate checks required fields.
func (r *CourseUpsertRequest) Validate() error {
	return validate.Struct(r)
}

// LessonCompleteRequest marks a lesson of a course as watched.
type LessonCompleteRequest struct {
	LessonTitle string `json:"lessonTitle" validate:"required"`
}

// Validate checks required fields.
func (r *LessonCompleteRequest) Validate() error {
	return validate.Struct(r)
}
