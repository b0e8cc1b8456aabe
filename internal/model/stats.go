package model

// Stats holds the lifetime usage counters. There is exactly one row.
type Stats struct {
	IdeasCreated   int64 `json:"ideas_created"`
	IdeasCompleted int64 `json:"ideas_completed"`
	IdeasCancelled int64 `json:"ideas_cancelled"`
	IdeasDeleted   int64 `json:"ideas_deleted"`

	TasksCreated     int64 `json:"tasks_created"`
	TasksCompleted   int64 `json:"tasks_completed"`
	TasksUncompleted int64 `json:"tasks_uncompleted"`
	TasksDeleted     int64 `json:"tasks_deleted"`

	NotesCreated int64 `json:"notes_created"`
	NotesDeleted int64 `json:"notes_deleted"`
}

// Counter names a single column of Stats
type Counter string

const (
	CounterIdeasCreated     Counter = "ideas_created"
	CounterIdeasCompleted   Counter = "ideas_completed"
	CounterIdeasCancelled   Counter = "ideas_cancelled"
	CounterIdeasDeleted     Counter = "ideas_deleted"
	CounterTasksCreated     Counter = "tasks_created"
	CounterTasksCompleted   Counter = "tasks_completed"
	CounterTasksUncompleted Counter = "tasks_uncompleted"
	CounterTasksDeleted     Counter = "tasks_deleted"
	CounterNotesCreated     Counter = "notes_created"
	CounterNotesDeleted     Counter = "notes_deleted"
)

// Counters lists every counter in display order
var Counters = []Counter{
	CounterIdeasCreated, CounterIdeasCompleted, CounterIdeasCancelled, CounterIdeasDeleted,
	CounterTasksCreated, CounterTasksCompleted, CounterTasksUncompleted, CounterTasksDeleted,
	CounterNotesCreated, CounterNotesDeleted,
}

// Get returns the value of a counter
func (s Stats) Get(c Counter) int64 {
	switch c {
	case CounterIdeasCreated:
		return s.IdeasCreated
	case CounterIdeasCompleted:
		return s.IdeasCompleted
	case CounterIdeasCancelled:
		return s.IdeasCancelled
	case CounterIdeasDeleted:
		return s.IdeasDeleted
	case CounterTasksCreated:
		return s.TasksCreated
	case CounterTasksCompleted:
		return s.TasksCompleted
	case CounterTasksUncompleted:
		return s.TasksUncompleted
	case CounterTasksDeleted:
		return s.TasksDeleted
	case CounterNotesCreated:
		return s.NotesCreated
	case CounterNotesDeleted:
		return s.NotesDeleted
	}
	return 0
}

// Valid reports whether c names a known counter
func (c Counter) Valid() bool {
	for _, k := range Counters {
		if k == c {
			return true
		}
	}
	return false
}

// Achievement is a named milestone that unlocks once and stays unlocked
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}
