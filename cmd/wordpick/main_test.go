package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordpick/internal/wordlist"
)

var (
	positionLine = regexp.MustCompile(`^This is word (\d+)/(\d+) for (\d+) letters\.$`)
	pickIDLine   = regexp.MustCompile(`^Pick id: (\S+)$`)
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("WORDPICK_DB", filepath.Join(dir, "history.db"))
	for _, name := range []string{"WORDPICK_LANG", "WORDPICK_LENGTH", "WORDPICK_WORDLIST", "WORDPICK_LOG_LEVEL", "WORDPICK_LOG_FORMAT"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return dir
}

func writeList(t *testing.T, dir string, words ...string) string {
	t.Helper()
	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func outputLines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

func TestPickPrintsWordAndPosition(t *testing.T) {
	dir := setupEnv(t)
	path := writeList(t, dir, "crane", "to", "house", "four", "apple")
	candidates := []string{"crane", "house", "apple"}

	out, err := execute(t, "--wordlist", path, "--length", "5", "--seed", "7")
	require.NoError(t, err)

	lines := outputLines(out)
	require.Len(t, lines, 5)
	assert.Equal(t, "Game characters: 5", lines[0])
	assert.Equal(t, "Amount of possible words: 3", lines[1])
	word := strings.TrimPrefix(lines[2], "Word to guess this game is: ")
	assert.Contains(t, candidates, word)

	m := positionLine.FindStringSubmatch(lines[3])
	require.NotNil(t, m, lines[3])
	pos, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	assert.Equal(t, word, candidates[pos])
	assert.Equal(t, "3", m[2])
	assert.Equal(t, "5", m[3])
	assert.Regexp(t, pickIDLine, lines[4])
}

func TestPickSeedIsReproducible(t *testing.T) {
	dir := setupEnv(t)
	words := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		words = append(words, "w"+strconv.Itoa(1000+i))
	}
	path := writeList(t, dir, words...)

	first, err := execute(t, "--wordlist", path, "-n", "5", "--seed", "42", "--no-record")
	require.NoError(t, err)
	second, err := execute(t, "--wordlist", path, "-n", "5", "--seed", "42", "--no-record")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, outputLines(first), 4)
}

func TestPickDuplicateReportsFirstPosition(t *testing.T) {
	dir := setupEnv(t)
	path := writeList(t, dir, "crane", "to", "crane", "crane")

	for seed := 1; seed <= 5; seed++ {
		out, err := execute(t, "--wordlist", path, "--seed", strconv.Itoa(seed), "--no-record")
		require.NoError(t, err)
		assert.Contains(t, out, "This is word 0/3 for 5 letters.")
	}
}

func TestPickEmptySelection(t *testing.T) {
	dir := setupEnv(t)
	path := writeList(t, dir, "crane", "house")

	out, err := execute(t, "--wordlist", path, "--length", "7", "--no-record")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Game characters: 7",
		"Amount of possible words: 0",
		"Could not select a word because the list of possible words is empty!",
	}, outputLines(out))
}

func TestPickMissingWordList(t *testing.T) {
	dir := setupEnv(t)

	_, err := execute(t, "--wordlist", filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, wordlist.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "wordpick wordlist --lang en")
}

func TestPickDefaultWordListForLang(t *testing.T) {
	dir := setupEnv(t)
	listDir := filepath.Join(dir, "config", "wordpick", "wordlists")
	require.NoError(t, os.MkdirAll(listDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(listDir, "de.txt"), []byte("haus\nbaum\n"), 0o644))

	out, err := execute(t, "--lang", "de", "-n", "4", "--no-record")
	require.NoError(t, err)
	assert.Contains(t, out, "Amount of possible words: 2")
}

func TestPickInvalidLength(t *testing.T) {
	dir := setupEnv(t)
	path := writeList(t, dir, "crane")

	_, err := execute(t, "--wordlist", path, "--length", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--length")
}

func TestPickConfigPrecedence(t *testing.T) {
	dir := setupEnv(t)
	path := writeList(t, dir, "cat", "dog", "crane", "bird")
	cfgPath := filepath.Join(dir, "config", "wordpick", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	content := "[game]\nlength = 3\nwordlist = " + strconv.Quote(path) + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	out, err := execute(t, "--no-record")
	require.NoError(t, err)
	assert.Contains(t, out, "Game characters: 3")
	assert.Contains(t, out, "Amount of possible words: 2")

	t.Setenv("WORDPICK_LENGTH", "4")
	out, err = execute(t, "--no-record")
	require.NoError(t, err)
	assert.Contains(t, out, "Game characters: 4")
	assert.Contains(t, out, "Amount of possible words: 1")

	out, err = execute(t, "--no-record", "--length", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Game characters: 5")
	assert.Contains(t, out, "Word to guess this game is: crane")
}

func TestPickPoolFromConfig(t *testing.T) {
	dir := setupEnv(t)
	path := writeList(t, dir, "alpha", "bravo", "crane", "delta")
	cfgPath := filepath.Join(dir, "config", "wordpick", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte("[pool]\nlong = 1\n"), 0o644))

	for seed := 1; seed <= 5; seed++ {
		out, err := execute(t, "--wordlist", path, "--seed", strconv.Itoa(seed), "--no-record")
		require.NoError(t, err)
		assert.Contains(t, out, "Word to guess this game is: alpha")
		assert.Contains(t, out, "This is word 0/4 for 5 letters.")
	}
}

func TestHiddenPickAndReveal(t *testing.T) {
	dir := setupEnv(t)
	path := writeList(t, dir, "crane", "house", "apple")

	out, err := execute(t, "--wordlist", path, "--reveal=false", "--seed", "3")
	require.NoError(t, err)
	assert.NotContains(t, out, "Word to guess")
	assert.Contains(t, out, "A word was selected from the 3 most common.")

	var id string
	for _, line := range outputLines(out) {
		if m := pickIDLine.FindStringSubmatch(line); m != nil {
			id = m[1]
		}
	}
	require.NotEmpty(t, id)

	out, err = execute(t, "reveal", id)
	require.NoError(t, err)
	lines := outputLines(out)
	require.Len(t, lines, 2)
	word := strings.TrimPrefix(lines[0], "Word to guess this game is: ")
	assert.Contains(t, []string{"crane", "house", "apple"}, word)
	assert.Regexp(t, positionLine, lines[1])

	out, err = execute(t, "reveal", id[:8])
	require.NoError(t, err)
	assert.Equal(t, lines[0], outputLines(out)[0])
}

func TestHiddenPickNeedsHistory(t *testing.T) {
	dir := setupEnv(t)
	path := writeList(t, dir, "crane")

	_, err := execute(t, "--wordlist", path, "--reveal=false", "--no-record")
	require.Error(t, err)
}

func TestRevealUnknownID(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "reveal", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pick with id")
}

func TestHistoryPlain(t *testing.T) {
	dir := setupEnv(t)
	path := writeList(t, dir, "crane", "house", "apple")

	for i := 0; i < 3; i++ {
		_, err := execute(t, "--wordlist", path, "--seed", strconv.Itoa(i+1))
		require.NoError(t, err)
	}

	out, err := execute(t, "history", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Picks: 3")
	assert.Contains(t, out, "Per Length")
	assert.NotContains(t, out, "Top Words")

	out, err = execute(t, "history", "--plain", "--reveal", "--last", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Picks: 2")
	assert.Contains(t, out, "Top Words")

	out, err = execute(t, "history", "--plain", "--length", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "No picks found.")
}

func TestHistoryInvalidSince(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "history", "--plain", "--since", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--since")
}

func TestLangsListsWordLists(t *testing.T) {
	dir := setupEnv(t)
	listDir := filepath.Join(dir, "config", "wordpick", "wordlists")
	require.NoError(t, os.MkdirAll(listDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(listDir, "fr.txt"), []byte("maison\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(listDir, "en.txt"), []byte("the\nof\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(listDir, "ATTRIBUTION.txt"), []byte("x\n"), 0o644))

	out, err := execute(t, "langs")
	require.NoError(t, err)
	assert.Equal(t, []string{"en\t2 words", "fr\t1 words"}, outputLines(out))
}

func TestLangsWithoutWordLists(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "langs")
	assert.ErrorIs(t, err, errNoWordLists)
}

func TestResolveWordlistLangs(t *testing.T) {
	available := []string{"de", "en", "fr"}

	langs, all, err := resolveWordlistLangs("", available)
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, langs)
	assert.False(t, all)

	langs, all, err = resolveWordlistLangs("all", available)
	require.NoError(t, err)
	assert.Equal(t, available, langs)
	assert.True(t, all)

	langs, _, err = resolveWordlistLangs(" FR, de ", available)
	require.NoError(t, err)
	assert.Equal(t, []string{"fr", "de"}, langs)

	_, _, err = resolveWordlistLangs("xx", available)
	assert.Error(t, err)

	_, _, err = resolveWordlistLangs(",", available)
	assert.Error(t, err)
}

func TestWriteWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "en.txt")
	require.NoError(t, writeWordList(path, []string{"the", "of", "and"}))

	words, err := wordlist.LoadWords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "of", "and"}, words)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEnsureConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordpick", "config.toml")
	require.NoError(t, ensureConfigFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[game]")
	assert.Contains(t, string(data), "# long = 1000")

	require.NoError(t, os.WriteFile(path, []byte("[game]\nlength = 4\n"), 0o644))
	require.NoError(t, ensureConfigFile(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[game]\nlength = 4\n", string(data))
}

func TestSetupLoggingRejectsUnknownLevel(t *testing.T) {
	setupEnv(t)
	t.Setenv("WORDPICK_LOG_LEVEL", "loud")

	_, err := execute(t, "langs")
	require.Error(t, err)
}
