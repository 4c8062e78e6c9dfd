package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <session-id>",
	Short: "Print the accepted plan's step sequence for a session",
	Long: `Prints the installation-order step sequence of a session's accepted
plan. Only a session's final accepted result carries step detail in the
checkpoint store (see internal/search's Checkpoint type); a session that
has not yet found a plan has nothing to explain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]
		st, err := sessionStore(cmd)
		if err != nil {
			return err
		}
		cp, err := st.Load(context.Background(), sessionID)
		if err != nil {
			return fmt.Errorf("loading session %q: %w", sessionID, err)
		}
		if cp.Result == nil {
			fmt.Printf("Session %q has no accepted plan yet (done=%v, found=%v)\n", sessionID, cp.Done, cp.Found)
			return nil
		}

		fmt.Printf("Plan %d for session %q:\n", cp.Result.ID, sessionID)
		for i, step := range cp.Result.Steps {
			fmt.Printf("  %d. [%d] %s\n", i+1, step.ID, step.Action)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
