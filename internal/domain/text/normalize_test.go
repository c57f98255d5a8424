package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LowercaseTrimCollapse(t *testing.T) {
	assert.Equal(t, "iphone 16 pro", Normalize("  iPhone   16\tPRO \n"))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize(" \t\n "))
}

func TestNormalize_KeepsPunctuation(t *testing.T) {
	// Normalize is not a tokenizer: symbols survive.
	assert.Equal(t, "c++ & go!", Normalize("C++ & Go!"))
}

func TestNormalize_ComposesDecomposedAccents(t *testing.T) {
	assert.Equal(t, "\u00e9cole", Normalize("E\u0301COLE"))
	assert.Equal(t, Normalize("\u00e9cole"), Normalize("e\u0301cole"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"  Hello   WORLD  ",
		"\tTab\nNewline\r\nCRLF",
		"E\u0301COLE De\u0301ja\u0300 vu",
		"ÇA VA?  Très   BIEN",
		"iPhone 16 Pro Max camera test",
		"\u00a0non\u00a0breaking\u00a0",
		"日本語 タイトル",
		"🔥 LIT 🔥",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestTokenize_Basic(t *testing.T) {
	assert.Equal(t,
		[]string{"iphone", "16", "pro", "max", "camera", "test"},
		Tokenize("iPhone 16 Pro Max camera test"))
}

func TestTokenize_PunctuationAndSymbols(t *testing.T) {
	assert.Equal(t, []string{"c", "go", "tips"}, Tokenize("C++ & Go—tips!"))
	assert.Equal(t, []string{"rock", "n", "roll"}, Tokenize("rock'n'roll"))
	assert.Equal(t, []string{"lit"}, Tokenize("🔥 LIT 🔥"))
}

func TestTokenize_PreservesOrderAndDuplicates(t *testing.T) {
	assert.Equal(t, []string{"go", "go", "gone"}, Tokenize("Go, go... GONE"))
}

func TestTokenize_Empty(t *testing.T) {
	assert.Nil(t, Tokenize(""))
	assert.Nil(t, Tokenize("!!! ---  ???"))
}

func TestTokenize_Unicode(t *testing.T) {
	assert.Equal(t, []string{"ça", "marche", "très", "bien"}, Tokenize("Ça marche: très bien!"))
}

func TestMiningTokens_Basic(t *testing.T) {
	assert.Equal(t,
		[]string{"héllo", "wörld", "4k", "60fps"},
		MiningTokens("Héllo, wörld! 4K_60fps"))
}

func TestMiningTokens_StricterThanTokenize(t *testing.T) {
	// A zero-width space is neither punctuation nor a symbol, so Tokenize
	// keeps it inside the token; mining treats it as a separator.
	in := "alpha\u200bbeta"
	assert.Equal(t, []string{"alpha\u200bbeta"}, Tokenize(in))
	assert.Equal(t, []string{"alpha", "beta"}, MiningTokens(in))
}

func TestMiningTokens_Empty(t *testing.T) {
	assert.Nil(t, MiningTokens(""))
	assert.Nil(t, MiningTokens("*** ### @@@"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 1, WordCount("iphone"))
	assert.Equal(t, 3, WordCount("iphone 16 pro"))
}

func TestValidTerm(t *testing.T) {
	assert.False(t, ValidTerm(""))
	assert.True(t, ValidTerm("a"))
	assert.True(t, ValidTerm("one two three"))
	assert.False(t, ValidTerm("one two three four"))
}
