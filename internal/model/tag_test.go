package model

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		wantKind ColorKind
		wantVal  string
		wantHex  string
	}{
		{"", ColorNamed, "colorPrimary", "#4B7BEC"},
		{"colorTeal", ColorNamed, "colorTeal", "#2BCBBA"},
		{"#fc5c65", ColorLiteral, "#FC5C65", "#FC5C65"},
		{" #abc ", ColorLiteral, "#AABBCC", "#AABBCC"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if c.Kind != tt.wantKind || c.Value != tt.wantVal {
				t.Errorf("ParseColor(%q) = %+v, want %s/%s", tt.in, c, tt.wantKind, tt.wantVal)
			}
			if c.Hex() != tt.wantHex {
				t.Errorf("Hex() = %s, want %s", c.Hex(), tt.wantHex)
			}
		})
	}
}

func TestParseColorRejectsUnknown(t *testing.T) {
	for _, in := range []string{"blue", "#12345", "colorprimary", "#GGGGGG"} {
		_, err := ParseColor(in)
		if err == nil {
			t.Errorf("ParseColor(%q) should fail", in)
			continue
		}
		if !IsValidation(err) {
			t.Errorf("ParseColor(%q) error %v is not a validation error", in, err)
		}
	}
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	base := errors.New("disk full")
	err := NewPersistenceError("save stats", base)
	if !errors.Is(err, base) {
		t.Fatal("expected PersistenceError to unwrap to cause")
	}
	if NewPersistenceError("noop", nil) != nil {
		t.Fatal("expected nil for nil cause")
	}
}

func TestStatsGet(t *testing.T) {
	s := Stats{TasksCreated: 5, NotesDeleted: 2}
	if s.Get(CounterTasksCreated) != 5 || s.Get(CounterNotesDeleted) != 2 || s.Get(CounterIdeasCreated) != 0 {
		t.Errorf("unexpected counter values: %+v", s)
	}
	if Counter("bogus").Valid() {
		t.Error("bogus counter should be invalid")
	}
}
