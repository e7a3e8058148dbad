package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bundle-release/internal/app"
)

type fingerprintOptions struct {
	Bundle string
}

func newFingerprintCommand() *cobra.Command {
	opts := fingerprintOptions{}
	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the content fingerprint of a bundle file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFingerprint(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Bundle, "bundle", "", "Bundle file path")
	_ = viper.BindPFlag("bundle", cmd.Flags().Lookup("bundle"))
	return cmd
}

func runFingerprint(ctx context.Context, cmd *cobra.Command, opts fingerprintOptions) error {
	service := app.NewService()
	result, err := service.Fingerprint(ctx, app.FingerprintRequest{
		BundlePath: resolveString(cmd, opts.Bundle, "bundle", "bundle"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d services)\n", result.Fingerprint, result.Services)
	return nil
}
