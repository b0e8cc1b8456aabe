package cli

import (
	"testing"
	"time"

	"github.com/existflow/ideaful/internal/model"
)

func TestParseDate(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	tests := []struct {
		in      string
		want    *time.Time
		wantErr bool
	}{
		{"", nil, false},
		{"today", &today, false},
		{"Tomorrow", ptr(today.AddDate(0, 0, 1)), false},
		{"2026-11-02", ptr(time.Date(2026, 11, 2, 0, 0, 0, 0, now.Location())), false},
		{"next week", nil, true},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDate(%q) error = %v", tt.in, err)
			continue
		}
		if tt.want == nil {
			if got != nil {
				t.Errorf("parseDate(%q) = %v, want nil", tt.in, got)
			}
			continue
		}
		if got == nil || !got.Equal(*tt.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ünïcödé title here", 8); got != "ünïcö..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestCounterLabel(t *testing.T) {
	if got := counterLabel(model.CounterTasksUncompleted); got != "Tasks uncompleted" {
		t.Errorf("counterLabel = %q", got)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}
