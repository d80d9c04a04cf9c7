// Package main provides the CLI entrypoint for wordpick.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordpick/internal/config"
	"github.com/verte-zerg/wordpick/internal/model"
	"github.com/verte-zerg/wordpick/internal/sampler"
	"github.com/verte-zerg/wordpick/internal/store"
	"github.com/verte-zerg/wordpick/internal/wordlist"
)

const (
	defaultLang   = "en"
	defaultLength = 5
)

var (
	pickLang     string
	pickLength   int
	pickWordList string
	pickSeed     int64
	pickNoRecord bool
	pickReveal   bool

	envCfg config.EnvConfig
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "wordpick",
		Short:             "Pick a target word for a word-guessing game",
		SilenceUsage:      true,
		SilenceErrors:     false,
		Args:              cobra.NoArgs,
		PersistentPreRunE: setup,
		RunE:              runPickCmd,
	}

	rootCmd.Flags().IntVarP(&pickLength, "length", "n", defaultLength, "word length")
	rootCmd.Flags().StringVar(&pickLang, "lang", defaultLang, "language code of the default word list")
	rootCmd.Flags().StringVar(&pickWordList, "wordlist", "", "word list path, most common word first (default: downloaded list for --lang)")
	rootCmd.Flags().Int64Var(&pickSeed, "seed", 0, "random seed (0 picks a fresh seed)")
	rootCmd.Flags().BoolVar(&pickNoRecord, "no-record", false, "do not store the pick in history")
	rootCmd.Flags().BoolVar(&pickReveal, "reveal", true, "print the selected word")

	rootCmd.AddCommand(newRevealCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	envCfg = cfg
	return setupLogging(os.Stderr, cfg)
}

func runPickCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// File values first, then environment; explicit flags win over both.
	applyStringConfig(cmd, "lang", &pickLang, fileCfg.Game.Lang)
	applyIntConfig(cmd, "length", &pickLength, fileCfg.Game.Length)
	applyStringConfig(cmd, "wordlist", &pickWordList, fileCfg.Game.WordList)
	applyStringConfig(cmd, "lang", &pickLang, envCfg.Lang)
	applyIntConfig(cmd, "length", &pickLength, envCfg.Length)
	applyStringConfig(cmd, "wordlist", &pickWordList, envCfg.WordList)

	cfg := model.Config{
		Lang:         pickLang,
		Length:       pickLength,
		WordListPath: pickWordList,
		Tiers:        tiersFromConfig(fileCfg.Pool),
		Seed:         pickSeed,
		Record:       !pickNoRecord,
		Reveal:       pickReveal,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	wordPath := resolveWordListPath(cfg)
	words, err := wordlist.LoadByLength(wordPath, cfg.Length)
	if err != nil {
		return wordListLoadError(cfg.Lang, wordPath, err)
	}
	log.Debug().Str("path", wordPath).Int("length", cfg.Length).Int("candidates", len(words)).Msg("word list loaded")

	var smp *sampler.Sampler
	if cfg.Seed != 0 {
		smp = sampler.NewWithSeed(cfg.Seed, sampler.WithTiers(cfg.Tiers))
	} else {
		smp = sampler.New(sampler.WithTiers(cfg.Tiers))
	}
	idx, ok := smp.PickIndex(words, cfg.Length)

	pick := model.Pick{
		Lang:         cfg.Lang,
		Length:       cfg.Length,
		PoolSize:     smp.PoolSize(cfg.Length, len(words)),
		Candidates:   len(words),
		WordListPath: wordPath,
	}
	if ok {
		pick.Word = words[idx]
		// Duplicates report the first occurrence.
		pick.Position = slices.Index(words, pick.Word)
		if cfg.Record {
			pick.ID, err = recordPick(cmd, pick)
			if err != nil {
				if !cfg.Reveal {
					return fmt.Errorf("failed to record pick: %w", err)
				}
				log.Warn().Err(err).Msg("failed to record pick")
			}
		}
	}
	return printPick(cmd.OutOrStdout(), cfg, pick, ok)
}

func recordPick(cmd *cobra.Command, pick model.Pick) (string, error) {
	st, err := store.Open(envCfg.DBPathOrDefault())
	if err != nil {
		return "", fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)
	return st.InsertPick(cmd.Context(), pick)
}

func printPick(w io.Writer, cfg model.Config, pick model.Pick, ok bool) error {
	lines := []string{
		fmt.Sprintf("Game characters: %d", cfg.Length),
		fmt.Sprintf("Amount of possible words: %d", pick.Candidates),
	}
	switch {
	case !ok:
		lines = append(lines, "Could not select a word because the list of possible words is empty!")
	case cfg.Reveal:
		lines = append(lines,
			fmt.Sprintf("Word to guess this game is: %s", pick.Word),
			fmt.Sprintf("This is word %d/%d for %d letters.", pick.Position, pick.Candidates, cfg.Length),
		)
		if pick.ID != "" {
			lines = append(lines, fmt.Sprintf("Pick id: %s", pick.ID))
		}
	default:
		lines = append(lines,
			fmt.Sprintf("A word was selected from the %d most common.", pick.PoolSize),
			fmt.Sprintf("Pick id: %s", pick.ID),
			fmt.Sprintf("Reveal it with: wordpick reveal %s", pick.ID),
		)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func tiersFromConfig(pool config.PoolConfig) model.Tiers {
	tiers := sampler.DefaultTiers()
	if pool.Long != nil {
		tiers.Long = *pool.Long
	}
	if pool.Medium != nil {
		tiers.Medium = *pool.Medium
	}
	if pool.Short != nil {
		tiers.Short = *pool.Short
	}
	return tiers
}

func validateConfig(cfg model.Config) error {
	if cfg.Length < 0 {
		return fmt.Errorf("--length must be >= 0")
	}
	if cfg.Lang == "" && cfg.WordListPath == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.Tiers.Long <= 0 || cfg.Tiers.Medium <= 0 || cfg.Tiers.Short <= 0 {
		return fmt.Errorf("pool sizes must be > 0")
	}
	if !cfg.Reveal && !cfg.Record {
		return fmt.Errorf("--reveal=false needs history; drop --no-record")
	}
	return nil
}

func resolveWordListPath(cfg model.Config) string {
	if cfg.WordListPath != "" {
		return cfg.WordListPath
	}
	return config.DefaultWordListPath(cfg.Lang)
}

func wordListLoadError(lang, path string, err error) error {
	if !errors.Is(err, wordlist.ErrSourceUnavailable) {
		return fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	hints := []string{
		fmt.Sprintf("expected word list at: %s", path),
		"Run: wordpick langs",
		fmt.Sprintf("Download: wordpick wordlist --lang %s", lang),
		"Or pass a file with --wordlist",
	}
	return fmt.Errorf("failed to load word list: %w\n%s", err, strings.Join(hints, "\n"))
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close db")
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
