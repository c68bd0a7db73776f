// Command listprefix lists objects under the resource-path prefix with one-hour download links.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sh3r4rd/bucket_links/internal/bootstrap"
	"github.com/sh3r4rd/bucket_links/internal/handler"
)

func main() {
	deps, err := bootstrap.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("listprefix: %v", err)
	}

	lambda.Start(handler.NewPrefixLister(deps.Bucket, deps.Logger).Handle)
}
