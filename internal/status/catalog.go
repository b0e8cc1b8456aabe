// Package status owns the idea lifecycle vocabulary and which part of it the user has enabled.
package status

import "github.com/existflow/ideaful/internal/model"

// Status is one entry of the lifecycle vocabulary
type Status struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	CanBeDisabled bool   `json:"can_be_disabled"`
}

// catalog is the full vocabulary in display order
var catalog = []Status{
	{model.StatusUnassigned, "#A5B1C2", false},
	{"New Idea", "#E456F0", true},
	{"Ideation", "#A55EEA", true},
	{"Not Started", "#FC5C65", true},
	{"Started", "#26DE81", true},
	{"Researching", "#2BCBBA", true},
	{"Planning", "#4B7BEC", true},
	{"Developing", "#A55EEA", true},
	{"Prototyping", "#E456F0", true},
	{"Testing", "#FD9644", true},
	{"Troubleshooting", "#FF6B6B", true},
	{"Reviewing", "#FD9644", true},
	{"Pitching", "#45AAF2", true},
	{"Seeking Funding", "#0FB9B1", true},
	{"Funded", "#20BF6B", true},
	{"Validated", "#26DE81", true},
	{"Under Review", "#FD9644", true},
	{"Deferred", "#FD9644", true},
	{"Blocked", "#FC5C65", true},
	{"Maintenance", "#26DE81", true},
	{"Quality Control", "#FD9644", true},
	{"Awaiting Feedback", "#2BCBBA", true},
	{"Awaiting Resources", "#2BCBBA", true},
	{"Pre-Production", "#4B7BEC", true},
	{"Production", "#A55EEA", true},
	{"Post-Production", "#E456F0", true},
	{"On Hold", "#FD9644", true},
	{"Documentation", "#54A0FF", true},
	{"Marketing", "#4B7BEC", true},
	{"Sunsetting", "#FD9644", true},
	{"Released", "#26DE81", true},
	{"Completed", "#26DE81", true},
	{"Cancelled", "#FC5C65", true},
	{"Abandoned", "#FC5C65", true},
	{"Archived", "#A5B1C2", true},
}

// Well-known status names referenced by other packages
const (
	Planning   = "Planning"
	Developing = "Developing"
	OnHold     = "On Hold"
	Completed  = "Completed"
	Cancelled  = "Cancelled"
	Archived   = "Archived"
)

var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, s := range catalog {
		m[s.Name] = i
	}
	return m
}()

// Catalog returns a copy of the full vocabulary in display order
func Catalog() []Status {
	out := make([]Status, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns every status name in display order
func Names() []string {
	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a status by exact name
func Lookup(name string) (Status, bool) {
	i, ok := index[name]
	if !ok {
		return Status{}, false
	}
	return catalog[i], true
}

// IsValid reports whether name is in the catalog
func IsValid(name string) bool {
	_, ok := index[name]
	return ok
}

// DefaultEnabled returns the names enabled on first run: the whole catalog
func DefaultEnabled() []string {
	return Names()
}
