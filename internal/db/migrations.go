package db

import "fmt"

// migrate runs all database migrations. Every statement is idempotent and
// valid for both SQLite and PostgreSQL.
func (db *DB) migrate() error {
	migrations := []string{
		migrationCreateIdeas,
		migrationCreateTags,
		migrationCreateIdeaTags,
		migrationCreateTasks,
		migrationCreateNotes,
		migrationCreateStats,
		migrationCreateAchievements,
	}

	for i, m := range migrations {
		if _, err := db.DB.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateIdeas = `
CREATE TABLE IF NOT EXISTS ideas (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    short_desc TEXT NOT NULL DEFAULT '',
    legacy_notes TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'Unassigned',
    image_paths TEXT NOT NULL DEFAULT '[]',
    tasks_created BIGINT NOT NULL DEFAULT 0,
    tasks_completed BIGINT NOT NULL DEFAULT 0,
    tasks_deleted BIGINT NOT NULL DEFAULT 0,
    notes_created BIGINT NOT NULL DEFAULT 0,
    notes_deleted BIGINT NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ideas_status ON ideas(status);
CREATE INDEX IF NOT EXISTS idx_ideas_updated ON ideas(updated_at);
`

const migrationCreateTags = `
CREATE TABLE IF NOT EXISTS tags (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    color_kind TEXT NOT NULL DEFAULT 'named',
    color TEXT NOT NULL DEFAULT 'colorPrimary',
    created_at TEXT NOT NULL
);
`

const migrationCreateIdeaTags = `
CREATE TABLE IF NOT EXISTS idea_tags (
    idea_id TEXT NOT NULL REFERENCES ideas(id) ON DELETE CASCADE,
    tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (idea_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_idea_tags_tag ON idea_tags(tag_id);
`

const migrationCreateTasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    idea_id TEXT NOT NULL REFERENCES ideas(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    completed INTEGER NOT NULL DEFAULT 0,
    priority INTEGER NOT NULL DEFAULT 0,
    due_date TEXT,
    reminder TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_idea ON tasks(idea_id);
`

const migrationCreateNotes = `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    idea_id TEXT NOT NULL REFERENCES ideas(id) ON DELETE CASCADE,
    title TEXT NOT NULL DEFAULT '',
    text TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_idea ON notes(idea_id);
`

const migrationCreateStats = `
CREATE TABLE IF NOT EXISTS stats (
    id INTEGER PRIMARY KEY,
    ideas_created BIGINT NOT NULL DEFAULT 0,
    ideas_completed BIGINT NOT NULL DEFAULT 0,
    ideas_cancelled BIGINT NOT NULL DEFAULT 0,
    ideas_deleted BIGINT NOT NULL DEFAULT 0,
    tasks_created BIGINT NOT NULL DEFAULT 0,
    tasks_completed BIGINT NOT NULL DEFAULT 0,
    tasks_uncompleted BIGINT NOT NULL DEFAULT 0,
    tasks_deleted BIGINT NOT NULL DEFAULT 0,
    notes_created BIGINT NOT NULL DEFAULT 0,
    notes_deleted BIGINT NOT NULL DEFAULT 0
);
`

const migrationCreateAchievements = `
CREATE TABLE IF NOT EXISTS achievements (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    unlocked INTEGER NOT NULL DEFAULT 0
);
`
