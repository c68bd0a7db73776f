// Command uploadlink issues presigned POST links for allowed object keys.
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
		log.Fatalf("uploadlink: %v", err)
	}

	lambda.Start(handler.NewUploader(deps.Bucket, deps.Config.ProtectedKeys, deps.Logger).Handle)
}
