package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pocl",
	Short: "pocl is a partial-order causal-link planner",
	Long:  `pocl searches for a partially-ordered, causally-justified plan over a YAML domain and problem, with hierarchical task decomposition and durative-action support.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Directory used to resolve relative session store paths")
}
