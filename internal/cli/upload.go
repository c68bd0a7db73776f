package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sh3r4rd/bucket_links/internal/config"
	"github.com/sh3r4rd/bucket_links/internal/handler"
	"github.com/sh3r4rd/bucket_links/internal/model"
)

// NewUploadLinkCommand creates `upload-link <bucket> <key>`.
func NewUploadLinkCommand(o *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload-link <bucket> <key>",
		Short: "Issue a presigned POST for key unless it is refused",
		Example: `  # Refuse overwriting the published data files
  bucketlinks upload-link my-bucket report-2024.csv --protected datafile0.csv,datafile1.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := o.deps(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			uploader := handler.NewUploader(deps.Bucket, deps.Config.ProtectedKeys, deps.Logger)
			status, body := uploader.UploadLink(ctx, model.UploadRequest{RequestedKey: args[1]})

			if _, err := fmt.Fprintf(o.Out, "HTTP - %d\n", status); err != nil {
				return err
			}
			return o.printJSON(body)
		},
	}

	cmd.Flags().String("protected", "", "Comma-joined keys that may not be uploaded (defaults to PROTECTED_FILES)")
	bind(o.v, config.KeyProtectedFiles, cmd.Flags().Lookup("protected"))

	return cmd
}
