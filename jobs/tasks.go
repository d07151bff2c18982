// Package jobs runs the background work of the dashboard: keeping the
// lookup caches warm so dropdowns render without an upstream round trip.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLookupRefresh re-fetches cached dropdown collections from the
	// business API.
	TaskLookupRefresh = "lookup:refresh"
)

// LookupRefreshPayload names the lookup keys to refresh. Empty means every
// registered key.
type LookupRefreshPayload struct {
	Keys []string `json:"keys"`
}

// NewLookupRefreshTask constructs an Asynq task.
func NewLookupRefreshTask(payload LookupRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLookupRefresh, data), nil
}
