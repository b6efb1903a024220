package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"bear-tracker/internal/adapters/hosting/pythonanywhere"
	"bear-tracker/internal/platform/httpclient"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "reload",
		Short: "Ask the hosting control plane to reload the web app",
		Long: "Reads " + pythonanywhere.EnvUsername + ", " + pythonanywhere.EnvToken + " and " +
			pythonanywhere.EnvDomain + " from the environment and sends one reload request. No retries.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := pythonanywhere.ConfigFromEnv()
			if err != nil {
				color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			cfg.BaseURL = baseURL
			cfg.Timeout = timeout

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runReload(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	defBase := strings.TrimSpace(os.Getenv("PA_BASE_URL"))
	if defBase == "" {
		defBase = pythonanywhere.DefaultBaseURL
	}
	cmd.Flags().StringVar(&baseURL, "base-url", defBase, "control plane base URL (env PA_BASE_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", pythonanywhere.DefaultTimeout, "request timeout")
	return cmd
}

// runReload hace un solo intento. Un status distinto de 200 se imprime con
// el body tal cual lo devolvió el control plane.
func runReload(ctx context.Context, cfg pythonanywhere.Config, out, errOut io.Writer) error {
	client, err := pythonanywhere.NewClient(cfg)
	if err != nil {
		color.New(color.FgRed).Fprintf(errOut, "Error: %v\n", err)
		return err
	}

	err = client.Reload(ctx)
	if err == nil {
		color.New(color.FgGreen).Fprintln(out, "reloaded OK")
		return nil
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		color.New(color.FgRed).Fprintf(errOut, "Got unexpected status code %d: %s\n", he.StatusCode, he.Body)
		return err
	}
	color.New(color.FgRed).Fprintf(errOut, "Error: %v\n", err)
	return fmt.Errorf("reload %s: %w", client.Domain(), err)
}
