package twitter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("hello", TruncateText("hello", MaxPostLength))

	// exactly at the limit stays untouched
	exact := strings.Repeat("a", MaxPostLength)
	assert.Equal(exact, TruncateText(exact, MaxPostLength))

	// one over gets cut to limit-3 plus the ellipsis
	long := strings.Repeat("a", MaxPostLength+1)
	assert.Equal(strings.Repeat("a", MaxPostLength-3)+"...", TruncateText(long, MaxPostLength))

	assert.Equal("", TruncateText("abc", 0))
	assert.Equal("ab", TruncateText("ab", 3))
	assert.Equal("abc", TruncateText("abcdefgh", 3))
}

func TestTruncateTextGraphemes(t *testing.T) {
	assert := assert.New(t)

	// the family emoji is a single grapheme cluster spanning many bytes
	fam := "👨‍👩‍👧‍👦"
	long := strings.Repeat(fam, 50)

	got := TruncateText(long, 10)
	assert.Equal(strings.Repeat(fam, 7)+"...", got)
	assert.True(utf8.ValidString(got))

	// flags are two-rune clusters; cutting between the runes would garble them
	flags := strings.Repeat("🇺🇦", 20)
	got = TruncateText(flags, 10)
	assert.Equal(strings.Repeat("🇺🇦", 7)+"...", got)
	assert.True(utf8.ValidString(got))
}
