package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bundle-release/internal/app"
)

type showOptions struct {
	Bundle   string
	Manifest string
}

func newShowCommand() *cobra.Command {
	opts := showOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a channel's manifest version, notes, and pinned images",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Bundle, "bundle", "", "Bundle file path")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest file path")
	_ = viper.BindPFlag("bundle", cmd.Flags().Lookup("bundle"))
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	return cmd
}

func runShow(ctx context.Context, cmd *cobra.Command, opts showOptions) error {
	service := app.NewService()
	result, err := service.Show(ctx, app.ShowRequest{
		BundlePath:   resolveString(cmd, opts.Bundle, "bundle", "bundle"),
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("version: %s\n", result.Version)
	fmt.Printf("fingerprint: %s\n", result.Fingerprint)
	for _, pin := range result.Services {
		fmt.Printf("  %s = %s\n", pin.Name, pin.Image)
	}
	if strings.TrimSpace(result.ReleaseNotes) != "" {
		fmt.Printf("notes:\n%s\n", result.ReleaseNotes)
	}
	return nil
}
