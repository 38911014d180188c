package types

import (
	"strings"
	"time"
)

// Stage is one value of the closed application status set.
type Stage string

// Supported stages, in canonical display order.
const (
	StageApplied     Stage = "applied"
	StageShortlisted Stage = "shortlisted"
	StageInterviewed Stage = "interviewed"
	StageOffered     Stage = "offered"
	StageRejected    Stage = "rejected"
)

// StageMeta describes how a stage is presented and which backend action
// moves an applicant into it.
type StageMeta struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Order int    `json:"order"`
	// Action is the path segment of /{role}/job/applicant/{action}.
	// Empty for stages that cannot be set by a recruiter.
	Action string `json:"action,omitempty"`
}

// Stages lists every stage in canonical order.
var Stages = []Stage{StageApplied, StageShortlisted, StageInterviewed, StageOffered, StageRejected}

var stageTable = map[Stage]StageMeta{
	StageApplied:     {Label: "Applied", Icon: "file-text", Color: "blue", Order: 0},
	StageShortlisted: {Label: "Shortlisted", Icon: "list-checks", Color: "amber", Order: 1, Action: "shortlist"},
	StageInterviewed: {Label: "Interviewed", Icon: "users", Color: "purple", Order: 2, Action: "interview"},
	StageOffered:     {Label: "Offered", Icon: "badge-check", Color: "green", Order: 3, Action: "offer"},
	StageRejected:    {Label: "Rejected", Icon: "circle-x", Color: "red", Order: 4, Action: "reject"},
}

// ParseStage normalizes a stage string.
func ParseStage(value string) (Stage, bool) {
	stage := Stage(strings.ToLower(strings.TrimSpace(value)))
	_, ok := stageTable[stage]
	if !ok {
		return "", false
	}
	return stage, true
}

// Valid reports whether the stage belongs to the closed set.
func (s Stage) Valid() bool {
	_, ok := stageTable[s]
	return ok
}

// Meta returns presentation details for the stage.
func (s Stage) Meta() (StageMeta, bool) {
	meta, ok := stageTable[s]
	return meta, ok
}

// Order returns the index of the stage in Stages, or -1 when unknown.
func (s Stage) Order() int {
	meta, ok := stageTable[s]
	if !ok {
		return -1
	}
	return meta.Order
}

// StatusRecord is one entry in an application's status history.
type StatusRecord struct {
	Stage     Stage     `json:"stage"`
	Remarks   string    `json:"remarks,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Application links a candidate to a job and carries its status history.
// The history is unordered; the current stage is decided by timestamp.
type Application struct {
	// ID is the backend identifier of the application.
	ID string `json:"_id"`

	// JobID identifies the job applied to.
	JobID string `json:"jobId"`

	// CandidateID identifies the applicant.
	CandidateID string `json:"candidateId"`

	// CandidateName is the applicant's display name, present in
	// recruiter-facing applicant lists.
	CandidateName string `json:"candidateName,omitempty"`

	// Job is an embedded summary present in candidate-facing lists.
	Job *Job `json:"job,omitempty"`

	// ResumeURL is an opaque link to the submitted resume.
	ResumeURL string `json:"resumeUrl,omitempty"`

	// Status is the status history.
	Status []StatusRecord `json:"status"`
}
