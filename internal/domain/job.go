package domain

import (
	"time"
)

// Job is a persisted migration batch
type Job struct {
	ID          string       `json:"id"`
	Type        EntityType   `json:"type"`
	Source      Platform     `json:"source"`
	Destination Platform     `json:"destination"`
	Items       []string     `json:"items"`
	Status      JobStatus    `json:"status"`
	Progress    int          `json:"progress"`
	Total       int          `json:"total"`
	Results     []ItemResult `json:"results"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// ItemResult is the outcome of migrating one source item
type ItemResult struct {
	ItemID           string     `json:"itemId"`
	Status           ItemStatus `json:"status"`
	DestinationID    string     `json:"destinationId,omitempty"`
	Error            string     `json:"error,omitempty"`
	ValidationErrors []string   `json:"validationErrors,omitempty"`
	Warnings         []string   `json:"warnings,omitempty"`
}

// Counts returns the number of succeeded and failed items
func (j *Job) Counts() (succeeded, failed int) {
	for _, r := range j.Results {
		if r.Status == ItemStatusSuccess {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
