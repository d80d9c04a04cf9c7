package wordlist

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadByLengthFiveLetterWords(t *testing.T) {
	path := writeList(t, "rust\ncrane\nhouse\nwordle\napple\n")

	words, err := LoadByLength(path, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "house", "apple"}, words)
}

func TestLoadByLengthMissingFile(t *testing.T) {
	words, err := LoadByLength(filepath.Join(t.TempDir(), "non_existent_file.txt"), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, words)
}

func TestFilterByLengthMatchesTrimmedLength(t *testing.T) {
	input := "  crane \n\tgo\nhouse\r\nab\n\nwordle\n  \nsea\n"
	for length := 0; length <= 7; length++ {
		words, err := FilterByLength(strings.NewReader(input), length)
		require.NoError(t, err)
		for _, word := range words {
			assert.Equal(t, length, utf8.RuneCountInString(strings.TrimSpace(word)))
		}
	}

	words, err := FilterByLength(strings.NewReader(input), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "house"}, words)
}

func TestFilterByLengthKeepsSourceOrder(t *testing.T) {
	input := "zebra\nalpha\nmango\nbravo\n"
	words, err := FilterByLength(strings.NewReader(input), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "alpha", "mango", "bravo"}, words)
}

func TestFilterByLengthCountsRunes(t *testing.T) {
	words, err := FilterByLength(strings.NewReader("éclat\ncafés\nabcdef\n"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"éclat", "cafés"}, words)
}

func TestFilterByLengthSkipsInvalidUTF8(t *testing.T) {
	input := "crane\n\xff\xfe\xfd\xfc\xfb\nhouse\n"
	words, err := FilterByLength(strings.NewReader(input), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "house"}, words)
}

func TestFilterByLengthNoMatchIsNotAnError(t *testing.T) {
	words, err := FilterByLength(strings.NewReader("a\nbb\n"), 9)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestFilterByLengthNegativeLength(t *testing.T) {
	_, err := FilterByLength(strings.NewReader("crane\n"), -1)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestFilterByLengthReadErrorBeforeFirstLine(t *testing.T) {
	boom := errors.New("boom")
	_, err := FilterByLength(iotest.ErrReader(boom), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, boom)
}

func TestFilterByLengthReadErrorAfterLines(t *testing.T) {
	r := io.MultiReader(strings.NewReader("crane\nrust\n"), iotest.ErrReader(errors.New("boom")))
	words, err := FilterByLength(r, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane"}, words)
}

func TestFilterByLengthLongLineBetweenWords(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	words, err := FilterByLength(strings.NewReader("crane\n"+long+"\nhouse\napple\n"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "house", "apple"}, words)
}

func TestFilterByLengthLongFirstLine(t *testing.T) {
	long := strings.Repeat("y", 70*1024)
	words, err := FilterByLength(strings.NewReader(long+"\ncrane"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane"}, words)
}

func TestFilterByLengthCRLFAndMissingFinalNewline(t *testing.T) {
	words, err := FilterByLength(strings.NewReader("crane\r\nrust\r\nhouse"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "house"}, words)
}

func TestLoadWordsLongLine(t *testing.T) {
	long := strings.Repeat("z", 70*1024)
	path := writeList(t, "the\n"+long+"\nof\n")
	words, err := LoadWords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", long, "of"}, words)
}

func TestLoadWordsSkipsBlankLines(t *testing.T) {
	path := writeList(t, "the\n\n  of \nand\n")
	words, err := LoadWords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "of", "and"}, words)
}

func TestLoadWordsEmpty(t *testing.T) {
	path := writeList(t, "\n \n")
	_, err := LoadWords(path)
	assert.ErrorIs(t, err, ErrEmpty)
}
