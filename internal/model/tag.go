package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ColorKind distinguishes a theme color key from a literal hex value.
type ColorKind string

const (
	ColorNamed   ColorKind = "named"
	ColorLiteral ColorKind = "literal"
)

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "colorPrimary"

// themeColors maps theme keys to their rendered hex value
var themeColors = map[string]string{
	"colorPrimary": "#4B7BEC",
	"colorBlue":    "#54A0FF",
	"colorGreen":   "#26DE81",
	"colorRed":     "#FC5C65",
	"colorOrange":  "#FD9644",
	"colorPurple":  "#A55EEA",
	"colorYellow":  "#FED330",
	"colorTeal":    "#2BCBBA",
	"colorMagenta": "#E456F0",
	"colorGrey":    "#A5B1C2",
}

// ThemeColorNames lists the theme keys in picker order
var ThemeColorNames = []string{
	"colorPrimary", "colorBlue", "colorGreen", "colorRed", "colorOrange",
	"colorPurple", "colorYellow", "colorTeal", "colorMagenta", "colorGrey",
}

// TagPalette is the set of literal colors offered for tags
var TagPalette = []string{
	"#A5B1C2", "#E456F0", "#A55EEA", "#FC5C65", "#26DE81", "#2BCBBA", "#4B7BEC",
	"#FD9644", "#FF6B6B", "#54A0FF", "#20BF6B", "#0FB9B1", "#45AAF2",
}

var hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Color is a tag color, either a theme key or a literal #RRGGBB value.
type Color struct {
	Kind  ColorKind `json:"kind"`
	Value string    `json:"value"`
}

// ParseColor normalizes user input into a Color. Empty input yields the default theme color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{Kind: ColorNamed, Value: DefaultTagColor}, nil
	}
	if _, ok := themeColors[s]; ok {
		return Color{Kind: ColorNamed, Value: s}, nil
	}
	if hexPattern.MatchString(s) {
		hex := strings.ToUpper(s[1:])
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		return Color{Kind: ColorLiteral, Value: "#" + hex}, nil
	}
	return Color{}, NewValidationError("color", fmt.Sprintf("%q is neither a theme color nor a #RRGGBB value", s))
}

// Hex resolves the color to a #RRGGBB value
func (c Color) Hex() string {
	if c.Kind == ColorNamed {
		if hex, ok := themeColors[c.Value]; ok {
			return hex
		}
		return themeColors[DefaultTagColor]
	}
	return c.Value
}

func (c Color) String() string {
	return c.Value
}

// Tag labels any number of ideas
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     Color     `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
