package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/existflow/ideaful/internal/model"
)

type sample struct {
	Title  string   `json:"title" validate:"notblank,max=5"`
	Images []string `json:"images" validate:"max=2"`
	Level  int      `json:"level" validate:"min=0,max=3"`
}

func TestStruct(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		in        sample
		wantField string
		wantIn    string
	}{
		{"ok", sample{Title: "abc"}, "", ""},
		{"blank", sample{Title: "   "}, "title", "required"},
		{"too long", sample{Title: "abcdef"}, "title", "5 characters"},
		{"too many images", sample{Title: "a", Images: []string{"1", "2", "3"}}, "images", "2 items"},
		{"level", sample{Title: "a", Level: 4}, "level", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tt.wantField)
			}
			if !strings.Contains(ve.Reason, tt.wantIn) {
				t.Errorf("reason %q does not mention %q", ve.Reason, tt.wantIn)
			}
		})
	}
}

func TestMaxCountsRunes(t *testing.T) {
	v := New()
	if err := v.Struct(sample{Title: "héllo"}); err != nil {
		t.Errorf("five runes should pass: %v", err)
	}
}
