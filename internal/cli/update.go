package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bundle-release/internal/app"
	"bundle-release/internal/core"
)

type updateOptions struct {
	Channel          string
	Bundle           string
	Manifest         string
	Registry         string
	RegistryUser     string
	RegistryAPIKey   string
	ChangelogURL     string
	ChangelogToken   string
	Edit             bool
	DryRun           bool
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func newUpdateCommand() *cobra.Command {
	opts := updateOptions{}
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Resolve service versions and roll the channel manifest forward",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Channel, "channel", "stable", "Release channel (stable or beta)")
	cmd.Flags().StringVar(&opts.Bundle, "bundle", "", "Bundle file path")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest file path")
	cmd.Flags().StringVar(&opts.Registry, "registry", "", "Container registry endpoint")
	cmd.Flags().StringVar(&opts.RegistryUser, "registry-user", "", "Registry username")
	cmd.Flags().StringVar(&opts.RegistryAPIKey, "registry-api-key", "", "Registry API key")
	cmd.Flags().StringVar(&opts.ChangelogURL, "changelog-url", "", "Raw changelog document URL")
	cmd.Flags().StringVar(&opts.ChangelogToken, "changelog-token", "", "Changelog bearer token")
	cmd.Flags().BoolVar(&opts.Edit, "edit", false, "Edit release notes interactively")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Compute the update without writing files")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 0, "HTTP retry count")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 0, "HTTP retry delay in milliseconds")

	_ = viper.BindPFlag("channel", cmd.Flags().Lookup("channel"))
	_ = viper.BindPFlag("bundle", cmd.Flags().Lookup("bundle"))
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("registry", cmd.Flags().Lookup("registry"))
	_ = viper.BindPFlag("registry_user", cmd.Flags().Lookup("registry-user"))
	_ = viper.BindPFlag("registry_api_key", cmd.Flags().Lookup("registry-api-key"))
	_ = viper.BindPFlag("changelog_url", cmd.Flags().Lookup("changelog-url"))
	_ = viper.BindPFlag("changelog_token", cmd.Flags().Lookup("changelog-token"))
	_ = viper.BindPFlag("edit", cmd.Flags().Lookup("edit"))
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("http_timeout", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.Flags().Lookup("http-retry-delay-ms"))

	return cmd
}

func runUpdate(ctx context.Context, cmd *cobra.Command, opts updateOptions) error {
	service := app.NewService()
	result, err := service.Update(ctx, app.UpdateRequest{
		Channel:          resolveString(cmd, opts.Channel, "channel", "channel"),
		BundlePath:       resolveString(cmd, opts.Bundle, "bundle", "bundle"),
		ManifestPath:     resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		RegistryEndpoint: resolveString(cmd, opts.Registry, "registry", "registry"),
		RegistryUser:     resolveString(cmd, opts.RegistryUser, "registry_user", "registry-user"),
		RegistryAPIKey:   resolveString(cmd, opts.RegistryAPIKey, "registry_api_key", "registry-api-key"),
		ChangelogURL:     resolveString(cmd, opts.ChangelogURL, "changelog_url", "changelog-url"),
		ChangelogToken:   resolveString(cmd, opts.ChangelogToken, "changelog_token", "changelog-token"),
		Interactive:      resolveBool(cmd, opts.Edit, "edit", "edit"),
		DryRun:           resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
		HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout", "http-timeout"),
		HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
		HTTPRetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
	})
	if err != nil {
		if core.IsNoChange(err) {
			fmt.Println("nothing to do")
		}
		return err
	}
	fmt.Printf("updated %s channel: %s -> %s (%d services changed)\n",
		result.Channel, result.PreviousVersion, result.NextVersion, len(result.Changes))
	return nil
}
