// Package filter composes the job listing filters: named fields sent to the
// listing endpoint, plus the recency and status refinements applied to the
// fetched set.
package filter

import (
	"fmt"
	"net/url"
	"time"

	"github.com/careerhub/frontdesk/types"
)

// Range tokens.
const (
	RangeFiveMinutes = "5min"
	RangeWeek        = "1w"
	RangeMonth       = "1m"
	RangeQuarter     = "3m"
	RangeHalfYear    = "6m"
	RangeAll         = "all"
)

// Status tokens.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusAll      = "all"
)

// rangeMinutes maps a range token to its threshold in minutes.
var rangeMinutes = map[string]float64{
	RangeFiveMinutes: 5,
	RangeWeek:        7 * 24 * 60,
	RangeMonth:       30 * 24 * 60,
	RangeQuarter:     90 * 24 * 60,
	RangeHalfYear:    180 * 24 * 60,
}

// JobFilter is the per-view filter record. Every field is optional and
// fields combine with logical AND.
type JobFilter struct {
	Title         string `json:"title"`
	Location      string `json:"location"`
	Gender        string `json:"gender"`
	Experience    string `json:"experience"`
	Qualification string `json:"qualification"`
	JobType       string `json:"jobType"`
	CareerLevel   string `json:"careerLevel"`
	Industry      string `json:"industry"`
	City          string `json:"city"`
	Specialisms   string `json:"specialisms"`
	SortBy        string `json:"sortBy"`
	SortOrder     string `json:"sortOrder"`

	// Range and Status never reach the server.
	Range  string `json:"range"`
	Status string `json:"status"`
}

// Default returns the reset state of the filter.
func Default() JobFilter {
	return JobFilter{
		SortBy:    "postedAt",
		SortOrder: "desc",
		Range:     RangeAll,
		Status:    StatusAll,
	}
}

// Reset restores every field to Default.
func (f *JobFilter) Reset() {
	*f = Default()
}

// serverFields lists the server-side fields by query parameter name, in a
// fixed order.
func (f *JobFilter) serverFields() []struct {
	name  string
	value *string
} {
	return []struct {
		name  string
		value *string
	}{
		{"title", &f.Title},
		{"location", &f.Location},
		{"gender", &f.Gender},
		{"experience", &f.Experience},
		{"qualification", &f.Qualification},
		{"jobType", &f.JobType},
		{"careerLevel", &f.CareerLevel},
		{"industry", &f.Industry},
		{"city", &f.City},
		{"specialisms", &f.Specialisms},
		{"sortBy", &f.SortBy},
		{"sortOrder", &f.SortOrder},
	}
}

// Query returns the server-side portion. Empty fields are omitted.
func (f JobFilter) Query() url.Values {
	values := url.Values{}
	for _, field := range f.serverFields() {
		if *field.value != "" {
			values.Set(field.name, *field.value)
		}
	}
	return values
}

// Set assigns a field by its query parameter name.
func (f *JobFilter) Set(name, value string) error {
	switch name {
	case "range":
		f.Range = value
		return nil
	case "status":
		f.Status = value
		return nil
	}
	for _, field := range f.serverFields() {
		if field.name == name {
			*field.value = value
			return nil
		}
	}
	return fmt.Errorf("unknown filter field %q", name)
}

// FromQuery starts from Default and applies every known parameter in
// values. Unknown parameters are ignored.
func FromQuery(values url.Values) JobFilter {
	f := Default()
	for name := range values {
		_ = f.Set(name, values.Get(name))
	}
	return f
}

// NeedsRefetch reports whether going from prev to next changes the server
// query. Range and status changes are served from the fetched set.
func NeedsRefetch(prev, next JobFilter) bool {
	prevFields, nextFields := prev.serverFields(), next.serverFields()
	for i := range prevFields {
		if *prevFields[i].value != *nextFields[i].value {
			return true
		}
	}
	return false
}

// Refine applies the client-side refinements to fetched jobs. Unknown
// tokens disable their refinement. The input slice is not modified.
func (f JobFilter) Refine(jobs []types.Job, now time.Time) []types.Job {
	threshold, limitByRange := rangeMinutes[f.Range]
	out := make([]types.Job, 0, len(jobs))
	for _, job := range jobs {
		if limitByRange && now.Sub(job.PostedAt).Minutes() > threshold {
			continue
		}
		switch f.Status {
		case StatusActive:
			if !job.IsActive {
				continue
			}
		case StatusInactive:
			if job.IsActive {
				continue
			}
		}
		out = append(out, job)
	}
	return out
}

// ValidRange reports whether token is a known range token.
func ValidRange(token string) bool {
	if token == RangeAll {
		return true
	}
	_, ok := rangeMinutes[token]
	return ok
}
