package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sh3r4rd/bucket_links/internal/handler"
	"github.com/sh3r4rd/bucket_links/internal/server"
)

// ServeOptions configure `serve`.
type ServeOptions struct {
	*RootOptions

	Addr   string
	Bucket string
}

// NewServeCommand creates `serve`.
func NewServeCommand(ro *RootOptions) *cobra.Command {
	o := &ServeOptions{RootOptions: ro}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the function handlers over local HTTP",
		Example: `  # Serve on the default port, bucket from BUCKET_NAME
  bucketlinks serve

  # Serve against a local S3-compatible store
  bucketlinks serve --bucket data --endpoint http://localhost:9000 --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd)
		},
	}

	cmd.Flags().StringVarP(&o.Addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVarP(&o.Bucket, "bucket", "b", "", "Bucket name (defaults to BUCKET_NAME)")

	return cmd
}

// Run builds the handlers and blocks serving them.
func (o *ServeOptions) Run(cmd *cobra.Command) error {
	deps, err := o.deps(cmd.Context(), o.Bucket)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Logger.Sync() }()

	srv := server.New(
		handler.NewPrefixLister(deps.Bucket, deps.Logger),
		handler.NewFlatLister(deps.Bucket, deps.Logger),
		handler.NewUploader(deps.Bucket, deps.Config.ProtectedKeys, deps.Logger),
		deps.Logger,
	)

	deps.Logger.Info("serving function handlers",
		zap.String("addr", o.Addr),
		zap.String("bucket", deps.Config.BucketName),
	)
	return srv.ListenAndServe(o.Addr)
}
