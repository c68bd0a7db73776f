// Command bucketlinks runs the bucket link functions from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/sh3r4rd/bucket_links/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
