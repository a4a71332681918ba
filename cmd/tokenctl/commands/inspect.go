package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skolar/auth-gateway/internal/token"
)

// NewInspectCmd decodes a token's payload without verifying the signature.
// Diagnostics only.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Decode a token payload without verifying it",
		Long:  "Base64-decode the payload segment of a compact token and print it. The signature is NOT checked; never trust the output.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, ok := token.DecodeUnverified(args[0])
			if !ok {
				return fmt.Errorf("token is not a well-formed compact token")
			}

			out, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return fmt.Errorf("render payload: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
