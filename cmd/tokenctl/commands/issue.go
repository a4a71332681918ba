package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skolar/auth-gateway/internal/config"
	"github.com/skolar/auth-gateway/internal/models"
	"github.com/skolar/auth-gateway/internal/token"
)

// NewIssueCmd mints a session token for a known user id. The extended flag
// switches to the 30-day refresh-style window.
func NewIssueCmd() *cobra.Command {
	var userID, email, provider string
	var extended bool

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Mint a signed session token",
		Long:  "Sign a session token (7 days) or an extended token (30 days) for the given user identity.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" || email == "" {
				return fmt.Errorf("--user-id and --email are required")
			}
			if !models.IsValidProvider(provider) {
				return fmt.Errorf("unsupported provider %q (google or github)", provider)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			window := token.SessionTTL
			if extended {
				window = token.ExtendedTTL
			}

			svc := token.NewService(cfg.JWTSecret)
			signed, err := svc.Issue(models.User{
				ID:       userID,
				Email:    email,
				Provider: models.Provider(provider),
			}, window)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}

			fmt.Println(signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "User id to embed in the token")
	cmd.Flags().StringVar(&email, "email", "", "User email to embed in the token")
	cmd.Flags().StringVar(&provider, "provider", "google", "Identity provider tag (google or github)")
	cmd.Flags().BoolVar(&extended, "extended", false, "Issue a 30-day extended token instead of the 7-day session token")
	return cmd
}
