package main

import (
	"context"
	"fmt"

	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/problem"
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <session-id> <problem.yaml>",
	Short: "Resume a checkpointed session",
	Long: `Re-runs search for a previously checkpointed session. The saved
checkpoint holds the session's Params, Stats, outcome and accepted-plan
summary, not the frontier (see internal/search's Checkpoint type), so
resuming rebuilds the initial plan and re-runs search with the
checkpoint's Params, adding the prior Stats to the new run's.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, problemPath := args[0], args[1]
		domainPath, _ := cmd.Flags().GetString("domain")
		if domainPath == "" {
			return fmt.Errorf("--domain is required")
		}

		st, err := sessionStore(cmd)
		if err != nil {
			return err
		}
		prior, err := st.Load(context.Background(), sessionID)
		if err != nil {
			return fmt.Errorf("loading prior checkpoint for %q: %w", sessionID, err)
		}

		params := prior.Params
		if params.Heuristic == "" {
			params = config.Default()
		}

		dom, err := problem.LoadDomain(domainPath)
		if err != nil {
			return fmt.Errorf("loading domain: %w", err)
		}
		prob, err := problem.LoadProblem(problemPath, dom)
		if err != nil {
			return fmt.Errorf("loading problem: %w", err)
		}

		fmt.Printf("Resuming session %q (prior stats: %+v)\n", sessionID, prior.Stats)
		result, cp := runSearch(sessionID, dom, prob, params)
		cp.Stats.PlansExpanded += prior.Stats.PlansExpanded
		cp.Stats.PlansGenerated += prior.Stats.PlansGenerated
		cp.Stats.GroundingRetries += prior.Stats.GroundingRetries
		cp.Stats.RestartsForFLimit += prior.Stats.RestartsForFLimit
		for kind, n := range prior.Stats.FlawsRepaired {
			if cp.Stats.FlawsRepaired == nil {
				cp.Stats.FlawsRepaired = map[string]int{}
			}
			cp.Stats.FlawsRepaired[kind] += n
		}

		if err := st.Save(context.Background(), sessionID, cp); err != nil {
			fmt.Printf("warning: checkpoint save failed: %v\n", err)
		}
		return printPlanResult(sessionID, result)
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.Flags().String("domain", "", "Path to the domain YAML document (required)")
}
