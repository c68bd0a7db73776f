// Package cli implements the bucketlinks command used to run the function
// logic against a bucket from a shell, or to serve it over local HTTP.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sh3r4rd/bucket_links/internal/bootstrap"
	"github.com/sh3r4rd/bucket_links/internal/config"
	"github.com/sh3r4rd/bucket_links/internal/model"
)

// RootOptions are shared by every subcommand.
type RootOptions struct {
	v   *viper.Viper
	Out io.Writer
}

// NewRootOptions returns options reading the environment and writing to out.
func NewRootOptions(out io.Writer) *RootOptions {
	v := config.NewViper()
	v.SetDefault(config.KeyLogJSON, false)
	return &RootOptions{v: v, Out: out}
}

// NewRootCommand creates the `bucketlinks` command writing to stdout.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithArgs(NewRootOptions(os.Stdout))
}

// NewRootCommandWithArgs creates the `bucketlinks` command and its children.
func NewRootCommandWithArgs(o *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bucketlinks [command]",
		Short:         "List bucket objects with download links and issue upload links",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadDotEnv()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("region", "", "AWS region of the bucket")
	flags.String("endpoint", "", "S3-compatible endpoint URL, enables path-style addressing")
	flags.String("access-key", "", "Static access key for the S3 endpoint (defaults to S3_ACCESS_KEY_ID)")
	flags.String("secret-key", "", "Static secret key for the S3 endpoint (defaults to S3_SECRET_ACCESS_KEY)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Log in JSON instead of console format")
	bind(o.v, config.KeyAWSRegion, flags.Lookup("region"))
	bind(o.v, config.KeyS3Endpoint, flags.Lookup("endpoint"))
	bind(o.v, config.KeyS3AccessKey, flags.Lookup("access-key"))
	bind(o.v, config.KeyS3SecretKey, flags.Lookup("secret-key"))
	bind(o.v, config.KeyLogLevel, flags.Lookup("log-level"))
	bind(o.v, config.KeyLogJSON, flags.Lookup("log-json"))

	cmd.AddCommand(NewListCommand(o))
	cmd.AddCommand(NewListAllCommand(o))
	cmd.AddCommand(NewUploadLinkCommand(o))
	cmd.AddCommand(NewServeCommand(o))

	return cmd
}

// deps builds the runtime dependencies, letting bucket override BUCKET_NAME.
func (o *RootOptions) deps(ctx context.Context, bucket string) (*bootstrap.Deps, error) {
	if bucket != "" {
		o.v.Set(config.KeyBucketName, bucket)
	}
	cfg, err := config.FromViper(o.v)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

func (o *RootOptions) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", model.ResponseIndent)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(o.Out, string(data))
	return err
}

// loadDotEnv reads .env from the working directory when present. Values
// already in the environment win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

func bind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %s", flag.Name, err))
	}
}
