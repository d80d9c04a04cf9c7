package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordpick/internal/historyui"
	"github.com/verte-zerg/wordpick/internal/model"
	"github.com/verte-zerg/wordpick/internal/stats"
	"github.com/verte-zerg/wordpick/internal/store"
)

var (
	historyLang   string
	historyLength int
	historySince  string
	historyLast   int
	historyPlain  bool
	historyReveal bool
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse previously picked words",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyLang, "lang", "", "language filter")
	cmd.Flags().IntVar(&historyLength, "length", 0, "word length filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N picks")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a text report instead of the interactive view")
	cmd.Flags().BoolVar(&historyReveal, "reveal", false, "show picked words")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter, err := historyFilter()
	if err != nil {
		return err
	}

	st, err := store.Open(envCfg.DBPathOrDefault())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	if historyPlain {
		report, err := stats.BuildReport(cmd.Context(), st, filter)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if !historyReveal {
			report.TopWords = nil
		}
		return stats.RenderReport(cmd.OutOrStdout(), report, 0)
	}

	load := func(ctx context.Context, f model.HistoryFilter) (stats.Report, error) {
		return stats.BuildReport(ctx, st, f)
	}
	program := tea.NewProgram(historyui.NewModel(load, filter, historyReveal), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func historyFilter() (model.HistoryFilter, error) {
	filter := model.HistoryFilter{
		Lang:   strings.ToLower(strings.TrimSpace(historyLang)),
		Length: historyLength,
		Last:   historyLast,
	}
	if historyLength < 0 {
		return filter, fmt.Errorf("--length must be >= 0")
	}
	if historyLast < 0 {
		return filter, fmt.Errorf("--last must be >= 0")
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	return filter, nil
}
