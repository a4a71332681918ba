package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skolar/auth-gateway/cmd/tokenctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "tokenctl",
		Short: "Operator tool for gateway session tokens",
		Long:  "Mint, verify, and inspect the gateway's signed session tokens.",
	}

	rootCmd.AddCommand(commands.NewIssueCmd())
	rootCmd.AddCommand(commands.NewVerifyCmd())
	rootCmd.AddCommand(commands.NewInspectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
