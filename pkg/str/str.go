package str

import (
	"strconv"
	"strings"
)

// StringToInt treats the empty string as zero.
func StringToInt(str string) (int, error) {
	if str == "" {
		return 0, nil
	}

	i, err := strconv.Atoi(str)
	if err != nil {
		return 0, err
	}

	return i, err
}

// Truncate cuts s to at most limit runes, appending an ellipsis when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// NormalizeSpace lowercases s and collapses runs of whitespace to one space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
