package businessflow

import (
	"strings"
	"unicode/utf8"
)

const (
	minTitleLen = 4
	minTopicLen = 2
)

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// optionalText treats a blank filter the same as a missing one.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
