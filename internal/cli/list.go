package cli

import (
	"github.com/spf13/cobra"

	"github.com/sh3r4rd/bucket_links/internal/handler"
)

// NewListCommand creates `list <bucket> [prefix]`.
func NewListCommand(o *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <bucket> [prefix]",
		Short: "List objects directly under a prefix with one-hour download links",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := o.deps(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			var prefix string
			if len(args) == 2 {
				prefix = args[1]
			}

			files, err := handler.NewPrefixLister(deps.Bucket, deps.Logger).ListFiles(ctx, prefix)
			if err != nil {
				return err
			}
			return o.printJSON(files)
		},
	}
}

// NewListAllCommand creates `list-all <bucket>`.
func NewListAllCommand(o *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list-all <bucket>",
		Short: "List every object in the bucket with fifteen-minute download links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := o.deps(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			files, err := handler.NewFlatLister(deps.Bucket, deps.Logger).ListFiles(ctx)
			if err != nil {
				return err
			}
			return o.printJSON(files)
		},
	}
}
