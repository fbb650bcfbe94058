package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/internal/core/ports"
	"github.com/kamal-hamza/shot/internal/core/services"
	"github.com/kamal-hamza/shot/pkg/metadata"
	"github.com/kamal-hamza/shot/pkg/ui"
)

const dryRunMessage = "with --dry-run, further actions are avoided."

// uploadOptions are the per-command flags shared by paste and upload
type uploadOptions struct {
	filename string
	metadata []string
	signed   bool
}

// uploadFrom reads, fits and uploads one image, then renders the result
func uploadFrom(cmd *cobra.Command, source ports.ImageSource, opts uploadOptions) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if err := appConfig.RequireAuth(appPaths.ConfigPath); err != nil {
		return err
	}

	md, err := metadata.Parse(opts.metadata)
	if err != nil {
		return err
	}

	prepared, err := uploadService.Prepare(ctx, services.PrepareRequest{
		Source:            source,
		Filename:          opts.filename,
		Metadata:          md,
		RequireSignedURLs: opts.signed,
	})
	if err != nil {
		return err
	}

	printPrepared(cmd, source, prepared)

	if dryRun {
		fmt.Fprintln(out, ui.FormatInfo(dryRunMessage))
		return nil
	}

	creds := domain.Credentials{
		AccountID: appConfig.Auth.AccountID,
		Token:     appConfig.Auth.Token,
	}

	var resp *domain.Response
	err = ui.RunWithSpinner(ctx, "Uploading image...", func(ctx context.Context) error {
		var err error
		resp, err = uploadService.Send(ctx, creds, prepared)
		return err
	})
	if err != nil {
		return err
	}

	renderResponse(out, resp)

	if resp.Success {
		copyLink(cmd, resp.Result, copyFormat)
	}
	return nil
}

func printPrepared(cmd *cobra.Command, source ports.ImageSource, prepared *services.Prepared) {
	out := cmd.OutOrStdout()
	p := prepared.Payload

	if p.Resized {
		fmt.Fprintln(out, ui.FormatWarning(fmt.Sprintf("Image too big (%s), resized from %d x %d",
			humanize.Bytes(uint64(p.OriginalSize)), p.OriginalWidth, p.OriginalHeight)))
	}

	fmt.Fprintln(out, ui.FormatImage(fmt.Sprintf("%s (%s): %d x %d, %s",
		source.Describe(), prepared.Request.Filename, p.Width, p.Height, prepared.SizeLabel())))

	if logger != nil {
		logger.Debug("payload ready",
			zap.Int("original_bytes", p.OriginalSize),
			zap.Int("bytes", p.Size()),
			zap.Int("metadata", len(prepared.Request.Metadata)))
	}
}
