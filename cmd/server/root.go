package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Tractor Tracker - farm labor and payment ledger",
	Long: `Tractor Tracker records farm labor performed by farmers and money
disbursed to them, and computes how much is still owed.

Run 'tracker serve' to start the API server, or 'tracker import' to
bulk-load farmer accounts.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
}
