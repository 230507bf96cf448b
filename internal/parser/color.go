package parser

import (
	"regexp"
	"strings"
)

const DefaultColor = "&7"

var (
	legacyColorPattern = regexp.MustCompile(`[&§][0-9a-zA-Z]`)
	hexColorPattern    = regexp.MustCompile(`#[0-9a-fA-F]{6}`)
)

// ExtractColor finds the color of a chat prefix: the first legacy code, else
// the first hex color, else gray.
func ExtractColor(prefix string) string {
	if code := legacyColorPattern.FindString(prefix); code != "" {
		return "&" + strings.ToLower(code[len(code)-1:])
	}
	if hex := hexColorPattern.FindString(prefix); hex != "" {
		return hex
	}
	return DefaultColor
}
