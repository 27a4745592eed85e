package games

import "strings"

// PlatformSeparator splits the raw platform field.
const PlatformSeparator = ","

// platformJoin joins platforms for display.
const platformJoin = ", "

// SplitPlatforms splits raw on every comma. Tokens are neither trimmed nor
// filtered, so "A,,B" yields ["A" "" "B"] and "" yields [""].
func SplitPlatforms(raw string) []string {
	return strings.Split(raw, PlatformSeparator)
}

// JoinPlatforms renders platforms for display, e.g. "PC, PS5".
func JoinPlatforms(platforms []string) string {
	return strings.Join(platforms, platformJoin)
}

// NewAddGameInput builds the mutation input from form values.
func NewAddGameInput(title, platformRaw string) AddGameInput {
	return AddGameInput{Title: title, Platform: SplitPlatforms(platformRaw)}
}
