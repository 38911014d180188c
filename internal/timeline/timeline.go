// Package timeline projects an application's status history onto the
// ordered list of stages shown to the user.
package timeline

import "github.com/careerhub/frontdesk/types"

// Entry is one rendered stage. Record is nil when the stage lies inside the
// visible prefix but was never recorded.
type Entry struct {
	Stage  types.Stage         `json:"stage"`
	Meta   types.StageMeta     `json:"meta"`
	Record *types.StatusRecord `json:"record,omitempty"`
}

// Timeline is the projection of a status history.
type Timeline struct {
	Empty    bool        `json:"empty"`
	Frontier types.Stage `json:"frontier,omitempty"`
	Entries  []Entry     `json:"entries"`
}

// Current returns the frontier stage: the stage of the latest record by
// CreatedAt. On equal timestamps the later element wins. Records with an
// unknown stage are ignored.
func Current(records []types.StatusRecord) (types.Stage, bool) {
	idx := latest(records, func(types.StatusRecord) bool { return true })
	if idx < 0 {
		return "", false
	}
	return records[idx].Stage, true
}

// Reduce builds the timeline. Visible stages are the canonical prefix up to
// and including the frontier; each shows its latest record.
//
// A frontier of rejected exposes every stage before it, including ones the
// application never reached.
func Reduce(records []types.StatusRecord) Timeline {
	frontier, ok := Current(records)
	if !ok {
		return Timeline{Empty: true, Entries: []Entry{}}
	}

	visible := types.Stages[:frontier.Order()+1]
	entries := make([]Entry, 0, len(visible))
	for _, stage := range visible {
		meta, _ := stage.Meta()
		entry := Entry{Stage: stage, Meta: meta}
		if idx := latest(records, func(r types.StatusRecord) bool { return r.Stage == stage }); idx >= 0 {
			record := records[idx]
			entry.Record = &record
		}
		entries = append(entries, entry)
	}

	return Timeline{Frontier: frontier, Entries: entries}
}

func latest(records []types.StatusRecord, match func(types.StatusRecord) bool) int {
	best := -1
	for i, record := range records {
		if !record.Stage.Valid() || !match(record) {
			continue
		}
		if best < 0 || !record.CreatedAt.Before(records[best].CreatedAt) {
			best = i
		}
	}
	return best
}
