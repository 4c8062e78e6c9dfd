package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/pocl/internal/store"
	"github.com/aretw0/pocl/internal/store/file"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage checkpointed search sessions",
	Long:  `List, inspect, and remove checkpointed search sessions stored in .pocl/sessions.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all checkpointed sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := sessionStore(cmd)
		if err != nil {
			return err
		}
		sessions, err := st.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No checkpointed sessions found.")
			return nil
		}
		fmt.Println("Sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print a session's checkpoint as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := sessionStore(cmd)
		if err != nil {
			return err
		}
		cp, err := st.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("loading session %q: %w", args[0], err)
		}
		data, err := json.MarshalIndent(cp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling checkpoint: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more checkpointed sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := sessionStore(cmd)
		if err != nil {
			return err
		}
		var failed bool
		for _, sessionID := range args {
			if err := st.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Printf("Error removing %q: %v\n", sessionID, err)
				failed = true
				continue
			}
			fmt.Printf("Removed session %q\n", sessionID)
		}
		if failed {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

// sessionStore resolves the on-disk checkpoint store rooted under
// <dir>/.pocl/sessions, the CLI's default persistence backend. Serving
// adapters that need redis/memory instead wire internal/store's other
// implementations directly rather than through this CLI helper.
func sessionStore(cmd *cobra.Command) (store.PlanStore, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = "."
	}
	return file.New(filepath.Join(dir, ".pocl", "sessions")), nil
}
