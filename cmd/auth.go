package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/internal/core/services"
	"github.com/kamal-hamza/shot/pkg/ui"
)

var authCmd = &cobra.Command{
	Use:   "auth <account_id> <token>",
	Short: "Authenticate with the Cloudflare API",
	Long: `Verify an account id + API token pair against Cloudflare Images and save it
to the config file. Only account id + token authentication is supported.

With --dry-run the pair is neither verified nor saved.`,
	Args: cobra.ExactArgs(2),
	RunE: runAuth,
}

func runAuth(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	req := services.AuthRequest{
		Credentials: domain.Credentials{
			AccountID: args[0],
			Token:     args[1],
		},
		DryRun: dryRun,
	}

	var resp *services.AuthResponse
	err := ui.RunWithSpinner(cmd.Context(), "Verifying new auth info...", func(ctx context.Context) error {
		var err error
		resp, err = authService.Authenticate(ctx, req)
		return err
	})
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(out, ui.FormatInfo(dryRunMessage))
		return nil
	}

	fmt.Fprintln(out, ui.FormatSuccess("Done adding authentication!"))
	fmt.Fprintln(out, ui.FormatMuted("Saved to "+resp.Location))
	return nil
}
