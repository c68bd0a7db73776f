// Command listall lists the bucket root with fifteen-minute download links.
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
		log.Fatalf("listall: %v", err)
	}

	lambda.Start(handler.NewFlatLister(deps.Bucket, deps.Logger).Handle)
}
