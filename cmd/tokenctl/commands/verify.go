package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skolar/auth-gateway/internal/config"
	"github.com/skolar/auth-gateway/internal/token"
)

// NewVerifyCmd checks a token's signature and expiry against the configured
// signing secret.
func NewVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify a session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			svc := token.NewService(cfg.JWTSecret)
			claims, ok := svc.Verify(args[0])
			if !ok {
				return fmt.Errorf("token is invalid or expired")
			}

			fmt.Println("Token is valid:")
			fmt.Printf("  userId:   %s\n", claims.UserID)
			fmt.Printf("  email:    %s\n", claims.Email)
			fmt.Printf("  provider: %s\n", claims.Provider)
			fmt.Printf("  issued:   %s\n", time.Unix(claims.Iat, 0).UTC().Format(time.RFC3339))
			fmt.Printf("  expires:  %s\n", time.Unix(claims.Exp, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}
}
