package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var invalidDirChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// CleanDirName makes a display title usable as a directory or file name.
func CleanDirName(input string) string {
	cleaned := invalidDirChars.ReplaceAllString(input, "_")

	cleaned = strings.TrimSpace(cleaned)

	return cleaned
}

// SafeFileName replaces every rune that is neither a letter nor a digit with '_'.
func SafeFileName(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return '_'
	}, input)
}
