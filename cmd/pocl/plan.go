package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/aretw0/pocl/internal/collab/memgraph"
	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/metrics"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/problem"
	"github.com/aretw0/pocl/internal/search"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <problem.yaml>",
	Short: "Search for a plan over a domain and problem",
	Long:  `Loads a domain and problem YAML document, runs the search driver to termination, and prints the resulting plan (or failure reason) as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domainPath, _ := cmd.Flags().GetString("domain")
		paramsPath, _ := cmd.Flags().GetString("params")
		sessionID, _ := cmd.Flags().GetString("session")
		if domainPath == "" {
			return fmt.Errorf("--domain is required")
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		dom, err := problem.LoadDomain(domainPath)
		if err != nil {
			return fmt.Errorf("loading domain: %w", err)
		}
		prob, err := problem.LoadProblem(args[0], dom)
		if err != nil {
			return fmt.Errorf("loading problem: %w", err)
		}

		params := config.Default()
		if paramsPath != "" {
			loaded, err := config.Load(paramsPath)
			if err != nil {
				return fmt.Errorf("loading params: %w", err)
			}
			params = loaded
		}
		if err := params.Validate(); err != nil {
			return fmt.Errorf("params: %w", err)
		}

		result, cp := runSearch(sessionID, dom, prob, params)

		st, err := sessionStore(cmd)
		if err != nil {
			return err
		}
		if err := st.Save(context.Background(), sessionID, cp); err != nil {
			fmt.Fprintf(os.Stderr, "warning: checkpoint save failed: %v\n", err)
		}

		return printPlanResult(sessionID, result)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().String("domain", "", "Path to the domain YAML document (required)")
	planCmd.Flags().String("params", "", "Path to an optional config.Parameters YAML override file")
	planCmd.Flags().String("session", "", "Session id to checkpoint under (generated if omitted)")
}

func runSearch(sessionID string, dom *problem.Domain, prob *problem.Problem, params config.Parameters) (search.Result, search.Checkpoint) {
	actions := make([]*model.Action, 0, len(dom.Actions))
	for _, a := range dom.Actions {
		actions = append(actions, a)
	}
	graph := memgraph.Build(actions)

	sctx := engine.New(dom, prob, graph, nil, metrics.Nop{}, params, rand.New(rand.NewSource(params.Seed)))
	result := search.Run(sctx)

	cp := search.Checkpoint{
		SessionID: sessionID,
		UpdatedAt: time.Now(),
		Params:    params,
		Stats:     result.Stats,
		Done:      true,
		Found:     result.Found,
	}
	if result.Found {
		summary := search.SummarizeForPlan(result.Plan)
		cp.Result = &summary
	}
	return result, cp
}

func printPlanResult(sessionID string, result search.Result) error {
	out := map[string]any{
		"session_id": sessionID,
		"found":      result.Found,
		"stats":      result.Stats,
	}
	if result.Found {
		out["plan"] = search.SummarizeForPlan(result.Plan)
	} else {
		out["reason"] = "search exhausted the frontier without finding a complete, groundable plan"
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Println(string(data))
	if !result.Found {
		os.Exit(1)
	}
	return nil
}
