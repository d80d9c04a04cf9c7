package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordpick/internal/store"
)

func newRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <pick-id>",
		Short: "Print the word of a recorded pick",
		Args:  cobra.ExactArgs(1),
		RunE:  runRevealCmd,
	}
}

func runRevealCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(envCfg.DBPathOrDefault())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	pick, err := st.GetPick(cmd.Context(), args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no pick with id %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to load pick: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Word to guess this game is: %s\n", pick.Word); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "This is word %d/%d for %d letters.\n", pick.Position, pick.Candidates, pick.Length)
	return err
}
