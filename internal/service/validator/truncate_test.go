package validator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateNoOpOnCompliantInput(t *testing.T) {
	inputs := []string{
		"",
		"short",
		"exactly thirty characters!!...",
		"Skinatrin Best Price",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Truncate(in, 30))
	}
}

func TestTruncateKeepsWholeWords(t *testing.T) {
	assert.Equal(t, "hello world", Truncate("hello world this is long", 11))
	assert.Equal(t, "hello", Truncate("hello world", 10))
}

func TestTruncateHardCutWhenNoWordFits(t *testing.T) {
	word := strings.Repeat("x", 50)
	got := Truncate(word, 30)
	assert.Equal(t, strings.Repeat("x", 27)+"...", got)
	assert.Equal(t, 30, utf8.RuneCountInString(got))
}

func TestTruncateIsIdempotent(t *testing.T) {
	inputs := []string{
		"hello world this is a long headline that keeps going",
		strings.Repeat("x", 50),
		"já com acentuação é prática em qualquer situação de compra",
		"short",
	}
	for _, in := range inputs {
		for _, limit := range []int{10, 25, 30} {
			once := Truncate(in, limit)
			assert.Equal(t, once, Truncate(once, limit), "input %q limit %d", in, limit)
			assert.LessOrEqual(t, utf8.RuneCountInString(once), limit)
		}
	}
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	// 10 two-byte runes fit a limit of 10.
	in := strings.Repeat("é", 10)
	assert.Equal(t, in, Truncate(in, 10))
}

func TestTruncateSentencesKeepsWholeSentences(t *testing.T) {
	s := strings.Repeat("a", 28)
	text := s + ". " + s + ". " + s + ". " + strings.Repeat("b", 20) + "."

	got := TruncateSentences(text, 90)
	assert.Equal(t, s+". "+s+". "+s+".", got)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 90)
}

func TestTruncateSentencesFallsBackToWords(t *testing.T) {
	// The single sentence is over budget, so word-level truncation applies.
	got := TruncateSentences("one two three four five six seven eight nine ten", 20)
	assert.Equal(t, "one two three four", got)
}

func TestTruncateSentencesNoOpOnCompliantInput(t *testing.T) {
	in := "First sentence. Second sentence."
	assert.Equal(t, in, TruncateSentences(in, 90))
}

func TestTruncateSentencesIsIdempotent(t *testing.T) {
	s := strings.Repeat("a", 28)
	text := s + ". " + s + ". " + s + ". " + strings.Repeat("b", 20) + "."
	once := TruncateSentences(text, 90)
	assert.Equal(t, once, TruncateSentences(once, 90))
}
