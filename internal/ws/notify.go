package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventJobsSeeded = "jobs_seeded"

type JobEvent struct {
	Type      string     `json:"type"`
	JobID     *uuid.UUID `json:"jobId,omitempty"`
	Added     int        `json:"added,omitempty"`
	Skipped   int        `json:"skipped,omitempty"`
	Timestamp string     `json:"timestamp"`
}

// JobChanged broadcasts a single job write. action is one of the job
// usecase's Action constants.
func (h *Hub) JobChanged(action string, jobID uuid.UUID) {
	id := jobID
	h.publish(JobEvent{Type: action, JobID: &id})
}

// JobsSeeded broadcasts the outcome of a seeding run.
func (h *Hub) JobsSeeded(added, skipped int) {
	h.publish(JobEvent{Type: EventJobsSeeded, Added: added, Skipped: skipped})
}

func (h *Hub) publish(evt JobEvent) {
	if h == nil {
		return
	}
	evt.Timestamp = time.Now().UTC().Format(time.RFC3339)
	b, err := json.Marshal(evt)
	if err != nil {
		h.logf("[WS] encode event failed type=%s: %v", evt.Type, err)
		return
	}
	h.Broadcast(b)
}
