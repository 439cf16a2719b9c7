package validator

import (
	"strings"
	"unicode/utf8"
)

// Truncate shortens text to the character limit by greedily keeping whole
// words, re-joined with single spaces. Already-compliant input is returned
// unchanged. When not even the first word fits, the text is hard-cut to
// limit-3 characters with a literal ellipsis appended. The operation is
// idempotent.
func Truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	words := strings.Split(text, " ")
	kept := make([]string, 0, len(words))
	length := 0
	for _, w := range words {
		add := utf8.RuneCountInString(w)
		if len(kept) > 0 {
			add++ // joining space
		}
		if length+add > limit {
			break
		}
		kept = append(kept, w)
		length += add
	}
	if len(kept) > 0 {
		return strings.Join(kept, " ")
	}
	return hardTruncate(text, limit)
}

// TruncateSentences shortens text by greedily keeping whole sentences split on
// the literal ". " delimiter. When no sentence fits it falls back to
// word-level truncation. Used for descriptions only.
func TruncateSentences(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	sentences := strings.Split(text, ". ")
	if len(sentences) > 1 {
		kept := make([]string, 0, len(sentences))
		length := 1 // restored trailing period
		for _, s := range sentences {
			add := utf8.RuneCountInString(s)
			if len(kept) > 0 {
				add += 2 // restored ". " separator
			}
			if length+add > limit {
				break
			}
			kept = append(kept, s)
			length += add
		}
		if len(kept) > 0 && len(kept) < len(sentences) {
			return strings.Join(kept, ". ") + "."
		}
	}
	return Truncate(text, limit)
}

// hardTruncate cuts to limit-3 characters and appends a literal ellipsis.
func hardTruncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
