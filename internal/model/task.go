package model

import "time"

// Priority levels for tasks
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// PriorityLabel returns the display label for a priority level
func PriorityLabel(p int) string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "None"
	}
}

// Task is a checklist item owned by an idea
type Task struct {
	ID          string     `json:"id"`
	IdeaID      string     `json:"idea_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Reminder    *time.Time `json:"reminder,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTask creates a new task with defaults
func NewTask(id, ideaID, title string) Task {
	return Task{
		ID:        id,
		IdeaID:    ideaID,
		Title:     title,
		Priority:  PriorityNone,
		CreatedAt: time.Now().UTC(),
	}
}

// IsDue returns true if the task is due today or overdue
func (t *Task) IsDue() bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(today.Add(24 * time.Hour))
}

// IsOverdue returns true if the task is past its due date
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(today)
}
