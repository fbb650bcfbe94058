package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot/internal/core/domain"
	"github.com/kamal-hamza/shot/pkg/ui"
)

// renderResponse prints API messages, then either the error list or the
// uploaded image with one section per variant.
func renderResponse(w io.Writer, resp *domain.Response) {
	for _, msg := range resp.Messages {
		fmt.Fprintln(w, ui.FormatInfo("Message  "+msg))
	}

	if !resp.Success {
		fmt.Fprintln(w, ui.FormatError("API returned an error:"))
		for _, apiErr := range resp.Errors {
			fmt.Fprintln(w, ui.FormatError(fmt.Sprintf("(Code %d) %s", apiErr.Code, apiErr.Message)))
		}
		return
	}

	img := resp.Result
	if img == nil {
		fmt.Fprintln(w, ui.FormatError("Bad response: success without a result"))
		return
	}

	fmt.Fprintln(w, ui.FormatSuccess("Image uploaded."))

	general := ui.NewKeyValueTable("General")
	general.Add("ID", img.ID)
	general.Add("Name", img.Filename)
	general.Add("Time", img.Uploaded.Format(time.RFC3339Nano))
	fmt.Fprint(w, general.Render())

	if len(img.Meta) > 0 {
		keys := make([]string, 0, len(img.Meta))
		for k := range img.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		meta := ui.NewKeyValueTable("Metadata")
		for _, k := range keys {
			meta.Add(k, img.Meta[k])
		}
		fmt.Fprint(w, meta.Render())
	}

	for _, variant := range img.Variants {
		section := ui.NewKeyValueTable("Variant " + ui.StyleSuccess.Render(variant.Name()))
		section.Add("Url", variant.String())
		section.Add("HTML", variant.HTML(img.Filename))
		section.Add("MD", variant.Markdown(img.Filename))
		fmt.Fprint(w, section.Render())
	}
}

// copyLink writes the first variant in the requested format to the clipboard
func copyLink(cmd *cobra.Command, img *domain.Image, format string) {
	if format == "" || format == "none" || img == nil || len(img.Variants) == 0 {
		return
	}

	link := img.Variants[0].Format(format, img.Filename)
	if err := clipboard.WriteAll(link); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatMuted("(Clipboard access failed)"))
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatInfo("Copied "+format+" link to clipboard"))
}
