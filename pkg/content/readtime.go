package content

import (
	"fmt"
	"strings"
)

// WordsPerMinute is the reading speed behind ReadTime.
const WordsPerMinute = 200

// WordCount counts whitespace-delimited tokens of the trimmed text.
func WordCount(text string) int {
	return len(strings.Fields(strings.TrimSpace(text)))
}

// ReadTimeMinutes is ceil(words/200), never below one minute.
func ReadTimeMinutes(text string) int {
	words := WordCount(text)
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ReadTime renders the "<n> min read" label.
func ReadTime(text string) string {
	return fmt.Sprintf("%d min read", ReadTimeMinutes(text))
}
