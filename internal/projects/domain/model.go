package domain

import "time"

// Status enumerates the lifecycle states a portfolio project moves through.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Project represents a single portfolio project.
// It is intentionally storage-agnostic and used across repository and HTTP layers.
type Project struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Technologies   []string   `json:"technologies"`
	Status         Status     `json:"status"`
	StartDate      time.Time  `json:"start_date"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	GithubLink     *string    `json:"github_link,omitempty"`
	LiveLink       *string    `json:"live_link,omitempty"`
	ImageURL       *string    `json:"image_url,omitempty"`
	Featured       bool       `json:"featured"`
	DisplayOrder   int        `json:"display_order"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Patch holds a partial update. Nil fields are left untouched.
type Patch struct {
	Title          *string
	Description    *string
	Technologies   *[]string
	Status         *Status
	StartDate      *time.Time
	CompletionDate *time.Time
	GithubLink     *string
	LiveLink       *string
	ImageURL       *string
	Featured       *bool
	DisplayOrder   *int
}

// Empty reports whether the patch carries no changes.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Technologies == nil &&
		p.Status == nil && p.StartDate == nil && p.CompletionDate == nil &&
		p.GithubLink == nil && p.LiveLink == nil && p.ImageURL == nil &&
		p.Featured == nil && p.DisplayOrder == nil
}

// Filter describes the predicates accepted by list queries.
type Filter struct {
	Status        Status
	Technology    string
	StartedAfter  *time.Time
	StartedBefore *time.Time
	Featured      *bool
	Limit         int
	Offset        int
}
