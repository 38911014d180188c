package types

import "time"

// Job represents a job posting as returned by the portal API.
// List views hold a transient copy that is re-fetched after every mutation.
type Job struct {
	// ID is the backend identifier of the job.
	ID string `json:"_id"`

	// Title is the headline of the posting.
	Title string `json:"title"`

	// Company is the display name of the hiring company.
	Company string `json:"company"`

	// Location is the free-form work location.
	Location string `json:"location"`

	// JobType is the engagement type (e.g., "full-time", "internship").
	JobType string `json:"jobType"`

	// Salary is the advertised salary, kept as the backend formats it.
	Salary string `json:"salary"`

	// Gender, Experience, Qualification, CareerLevel, Industry, City and
	// Specialisms are the attributes the listing endpoint filters on.
	Gender        string   `json:"gender,omitempty"`
	Experience    string   `json:"experience,omitempty"`
	Qualification string   `json:"qualification,omitempty"`
	CareerLevel   string   `json:"careerLevel,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	City          string   `json:"city,omitempty"`
	Specialisms   []string `json:"specialisms,omitempty"`

	// PostedAt is the time the job was published. The client-side
	// recency filter is computed from it.
	PostedAt time.Time `json:"postedAt"`

	// ApplicationDeadline is the last day applications are accepted.
	ApplicationDeadline time.Time `json:"applicationDeadline"`

	// IsActive indicates whether the posting is open.
	IsActive bool `json:"isActive"`

	// CompanyID identifies the owning company.
	CompanyID string `json:"companyId"`

	// PostedBy identifies the user (company or employee) who created the job.
	PostedBy string `json:"postedBy"`
}
