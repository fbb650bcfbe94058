package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot/internal/adapters/clipboard"
	"github.com/kamal-hamza/shot/internal/core/domain"
)

var (
	pasteFileName string
	pasteMetadata []string
	pasteSigned   bool
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Upload the image in the clipboard",
	Long: `Read the image currently in the system clipboard, encode it to PNG and
upload it to Cloudflare Images.

The filename defaults to the upload time in RFC 3339 format
(e.g. 2021-12-20T01:01:01Z.png).`,
	Args: cobra.NoArgs,
	RunE: runPaste,
}

func init() {
	pasteCmd.Flags().StringVarP(&pasteFileName, "file-name", "n", "", "Filename of the image (default: upload time in RFC 3339)")
	pasteCmd.Flags().StringArrayVarP(&pasteMetadata, "metadata", "m", nil, "Key-value pair bound to the image, $KEY=$VALUE (repeatable)")
	pasteCmd.Flags().BoolVar(&pasteSigned, "signed", false, "Require signed URLs to access the image")
}

func runPaste(cmd *cobra.Command, args []string) error {
	filename := pasteFileName
	if filename == "" {
		filename = domain.DefaultFilename(time.Now())
	}

	return uploadFrom(cmd, clipboard.NewSource(), uploadOptions{
		filename: filename,
		metadata: pasteMetadata,
		signed:   pasteSigned,
	})
}
