package model

import "time"

// Field limits shared by every surface that edits an idea.
const (
	MaxTitleLength = 85
	MaxImages      = 10
)

// StatusUnassigned is the fallback status every idea may hold.
const StatusUnassigned = "Unassigned"

// Idea is the top-level entity users track
type Idea struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ShortDesc   string    `json:"short_desc"`
	LegacyNotes string    `json:"-"`
	Status      string    `json:"status"`
	ImagePaths  []string  `json:"image_paths"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	TasksCreated   int64 `json:"tasks_created"`
	TasksCompleted int64 `json:"tasks_completed"`
	TasksDeleted   int64 `json:"tasks_deleted"`
	NotesCreated   int64 `json:"notes_created"`
	NotesDeleted   int64 `json:"notes_deleted"`
}

// NewIdea creates an idea with an Unassigned status and fresh timestamps
func NewIdea(id, title string) Idea {
	now := time.Now().UTC()
	return Idea{
		ID:         id,
		Title:      title,
		Status:     StatusUnassigned,
		ImagePaths: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Note is free-form text attached to an idea
type Note struct {
	ID        string    `json:"id"`
	IdeaID    string    `json:"idea_id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MigratedNotesTitle titles the note created from an idea's legacy notes field.
const MigratedNotesTitle = "Migrated Notes"
