package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot/internal/adapters/imagefile"
	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/pkg/ui"
)

var (
	uploadFileName string
	uploadMetadata []string
	uploadSigned   bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Encode a local image to PNG and upload it",
	Long: `Decode a local image (PNG, JPEG, GIF, BMP, TIFF or WebP), encode it to PNG
and upload it to Cloudflare Images.

The filename defaults to the local file name with a .png extension.
Without a file argument an interactive finder lists the images in the
current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadFileName, "file-name", "n", "", "Filename of the image (default: local file name)")
	uploadCmd.Flags().StringArrayVarP(&uploadMetadata, "metadata", "m", nil, "Key-value pair bound to the image, $KEY=$VALUE (repeatable)")
	uploadCmd.Flags().BoolVar(&uploadSigned, "signed", false, "Require signed URLs to access the image")
}

func runUpload(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		selected, err := pickImageFile(".")
		if err != nil {
			return err
		}
		if selected == "" {
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatInfo("Selection cancelled."))
			return nil
		}
		path = selected
	}

	filename := uploadFileName
	if filename == "" {
		filename = domain.FilenameFromPath(path)
	}
	if filename == "" {
		filename = domain.DefaultFilename(time.Now())
	}

	return uploadFrom(cmd, imagefile.NewSource(path), uploadOptions{
		filename: filename,
		metadata: uploadMetadata,
		signed:   uploadSigned,
	})
}

// pickImageFile launches the fuzzy finder over images in dir. An empty
// result means the user aborted.
func pickImageFile(dir string) (string, error) {
	files, err := imagefile.List(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no image files found in %s", dir)
	}

	idx, err := fuzzyfinder.Find(
		files,
		func(i int) string {
			return filepath.Base(files[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			info, err := os.Stat(files[i])
			if err != nil {
				return ui.FormatError(err.Error())
			}

			var s strings.Builder
			s.WriteString(fmt.Sprintf("File: %s\n", ui.StyleBold.Render(filepath.Base(files[i]))))
			s.WriteString(fmt.Sprintf("Size: %s\n", humanize.Bytes(uint64(info.Size()))))
			s.WriteString(fmt.Sprintf("Date: %s\n", info.ModTime().Format("Jan 02, 2006 15:04")))
			return s.String()
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", fmt.Errorf("failed to select file: %w", err)
	}

	return files[idx], nil
}
