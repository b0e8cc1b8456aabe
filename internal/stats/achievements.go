package stats

import (
	"fmt"

	"github.com/existflow/ideaful/internal/model"
)

// Catalog is every achievement the app can award, ordered by id
var Catalog = []model.Achievement{
	{ID: "I01", Title: "First Idea", Description: "Created Your 1st Idea."},
	{ID: "I02", Title: "Just The Start", Description: "Created Your 2nd Idea."},
	{ID: "I03", Title: "Idea Expert", Description: "Created Your 10th Ideas."},
	{ID: "I04", Title: "Vault of Ideas", Description: "Created Your 25th Ideas."},
	{ID: "I05", Title: "Finished an Idea", Description: "Completed Your 1st Idea."},
	{ID: "I06", Title: "Two For Two", Description: "Completed Your 2nd Idea."},
	{ID: "I07", Title: "10 Out Of 10", Description: "Completed Your 10th Idea."},
	{ID: "I08", Title: "Completionist", Description: "Completed Your 25th Idea."},
	{ID: "I09", Title: "Next Time", Description: "Delete Your 1st Idea."},
	{ID: "I10", Title: "Bad Hand", Description: "Deleted Your 5th Idea."},
	{ID: "I11", Title: "Wasn't Meant To Be", Description: "Deleted Your 10th Idea."},
	{ID: "I12", Title: "CTRL ALT DELETE", Description: "Deleted Your 25th Idea."},
	{ID: "I13", Title: "Plan Of Action", Description: "Start Planning An Idea."},
	{ID: "I14", Title: "Developing It", Description: "Start Developing An Idea."},
	{ID: "I15", Title: "Let's Put This On Hold", Description: "Put An Idea On Hold"},
	{ID: "I16", Title: "Uh-Oh Cancelled", Description: "Cancel An Idea"},
	{ID: "I17", Title: "Archived", Description: "Archive An Idea"},

	{ID: "N01", Title: "First Note", Description: "Create your 1st note."},
	{ID: "N02", Title: "Note Beginner", Description: "Create your 5th note."},
	{ID: "N03", Title: "Note Expert", Description: "Create your 10th note."},
	{ID: "N04", Title: "The Notetaker", Description: "Create your 50th note."},
	{ID: "N05", Title: "Noted", Description: "Create your 100th note."},
	{ID: "N06", Title: "Keeper of Notes", Description: "Create your 250th note."},
	{ID: "N07", Title: "Busy Notebook", Description: "Create your 500th note."},
	{ID: "N08", Title: "Vault of Notes", Description: "Create your 1000th note."},
	{ID: "N09", Title: "Note Deleted", Description: "Delete your 1st note."},
	{ID: "N10", Title: "Oops! There It Goes.", Description: "Delete your 5th note."},
	{ID: "N11", Title: "Let's Do This...Nevermind.", Description: "Delete your 10th note."},
	{ID: "N12", Title: "This Probably Didn't Need To Be.", Description: "Delete your 50th note."},
	{ID: "N13", Title: "Note Eliminator", Description: "Delete your 100th note."},
	{ID: "N14", Title: "Note Purger", Description: "Delete your 250th note."},
	{ID: "N15", Title: "Declutterer", Description: "Delete your 500th note."},
	{ID: "N16", Title: "Vault Cleaner", Description: "Delete your 1000th note."},

	{ID: "T01", Title: "First Task", Description: "Create your 1st task."},
	{ID: "T02", Title: "Task Beginner", Description: "Create your 5th task."},
	{ID: "T03", Title: "Task Expert", Description: "Create your 10th task."},
	{ID: "T04", Title: "The Tasker", Description: "Create your 50th task."},
	{ID: "T05", Title: "Tasked", Description: "Create your 100th task."},
	{ID: "T06", Title: "Keeper of Tasks", Description: "Create your 250th task."},
	{ID: "T07", Title: "Busy Life", Description: "Create your 500th task."},
	{ID: "T08", Title: "Vault of Tasks", Description: "Create your 1000th task."},
	{ID: "T09", Title: "Task Completed", Description: "Complete your 1st task."},
	{ID: "T10", Title: "Tis To Easy", Description: "Completed your 5th task."},
	{ID: "T11", Title: "Weekend Todo List", Description: "Completed your 10th task."},
	{ID: "T12", Title: "Check", Description: "Completed your 50th task."},
	{ID: "T13", Title: "Checkmate", Description: "Completed your 100th task."},
	{ID: "T14", Title: "Task House", Description: "Completed your 250th task."},
	{ID: "T15", Title: "Tis But A Task", Description: "Completed your 500th task."},
	{ID: "T16", Title: "Can't Stop Me!", Description: "Completed your 1000th task."},
	{ID: "T17", Title: "Task Deleted", Description: "Deleted Your 1st task."},
	{ID: "T18", Title: "Oops! There It Goes.", Description: "Deleted Your 5th task."},
	{ID: "T19", Title: "Let's Do This...Nevermind.", Description: "Deleted Your 10th task."},
	{ID: "T20", Title: "This Probably Didn't Need To Be.", Description: "Deleted Your 50th task."},
}

// ThresholdRule unlocks Achievement once Counter reaches Threshold
type ThresholdRule struct {
	Counter     model.Counter
	Threshold   int64
	Achievement string
}

// StatusRule unlocks Achievement once any idea holds Status
type StatusRule struct {
	Status      string
	Achievement string
}

var (
	ideaLadder = []int64{1, 2, 10, 25}
	taskLadder = []int64{1, 5, 10, 50, 100, 250, 500, 1000}
)

// ladder builds one rule per threshold with sequential achievement ids
func ladder(counter model.Counter, prefix string, first int, thresholds []int64) []ThresholdRule {
	rules := make([]ThresholdRule, len(thresholds))
	for i, th := range thresholds {
		rules[i] = ThresholdRule{Counter: counter, Threshold: th, Achievement: achievementID(prefix, first+i)}
	}
	return rules
}

func achievementID(prefix string, n int) string {
	return fmt.Sprintf("%s%02d", prefix, n)
}

// ThresholdRules is the full counter-based rule table
var ThresholdRules = concat(
	ladder(model.CounterIdeasCreated, "I", 1, ideaLadder),
	ladder(model.CounterIdeasCompleted, "I", 5, ideaLadder),
	ladder(model.CounterIdeasDeleted, "I", 9, []int64{1, 5, 10, 25}),
	ladder(model.CounterTasksCreated, "T", 1, taskLadder),
	ladder(model.CounterTasksCompleted, "T", 9, taskLadder),
	ladder(model.CounterTasksDeleted, "T", 17, []int64{1, 5, 10, 50}),
	ladder(model.CounterNotesCreated, "N", 1, taskLadder),
	ladder(model.CounterNotesDeleted, "N", 9, taskLadder),
)

// StatusRules award achievements for reaching a lifecycle stage
var StatusRules = []StatusRule{
	{Status: "Planning", Achievement: "I13"},
	{Status: "Developing", Achievement: "I14"},
	{Status: "On Hold", Achievement: "I15"},
	{Status: "Cancelled", Achievement: "I16"},
	{Status: "Archived", Achievement: "I17"},
}

func concat(groups ...[]ThresholdRule) []ThresholdRule {
	var out []ThresholdRule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var catalogIndex = func() map[string]model.Achievement {
	m := make(map[string]model.Achievement, len(Catalog))
	for _, a := range Catalog {
		m[a.ID] = a
	}
	return m
}()
