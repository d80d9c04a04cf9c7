package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordpick/internal/config"
	"github.com/verte-zerg/wordpick/internal/wordlist"
)

var errNoWordLists = errors.New("no word lists found, download with: wordpick wordlist --lang <code>")

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List downloaded word list languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	dir := config.DefaultWordListDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errNoWordLists
		}
		return fmt.Errorf("failed to read word list directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		if name == "ATTRIBUTION.txt" || name == "LICENSE.txt" {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".txt"))
	}
	if len(langs) == 0 {
		return errNoWordLists
	}
	sort.Strings(langs)
	for _, lang := range langs {
		line := lang
		words, err := wordlist.LoadWords(filepath.Join(dir, lang+".txt"))
		if err != nil {
			log.Warn().Err(err).Str("lang", lang).Msg("failed to read word list")
		} else {
			line = fmt.Sprintf("%s\t%d words", lang, len(words))
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
