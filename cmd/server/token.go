package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"imagesvc/internal/auth/jwtauth"
	"imagesvc/internal/config"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token signed with the configured secret (development only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.Server.Environment == "production" {
				return errors.New("token: refusing to issue tokens in production")
			}
			token, err := jwtauth.NewVerifier(cfg.JWT).Issue(userID, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "dev-user", "user ID placed in the token")
	cmd.Flags().StringVar(&email, "email", "", "email placed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
