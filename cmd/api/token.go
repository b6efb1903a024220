package main

import (
	"errors"
	"fmt"
	"time"

	"bear-tracker/internal/adapters/auth/jwtauth"
	"bear-tracker/internal/ports/auth"

	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a deployer JWT for POST /bears/update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret (DEPLOY_JWT_SECRET) is not set")
			}
			tok, err := jwtauth.Issue(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, subject, []string{auth.RoleDeployer}, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "ci", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
