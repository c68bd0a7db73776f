// Package handler implements the API Gateway proxy handlers that list
// bucket objects with download links and issue presigned upload links.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/sh3r4rd/bucket_links/internal/model"
	"github.com/sh3r4rd/bucket_links/internal/storage"
)

// Bucket is the storage surface the handlers need.
type Bucket interface {
	List(ctx context.Context, prefix string, maxKeys int32) ([]storage.Object, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	PresignPost(ctx context.Context, key string, ttl time.Duration) (*model.UploadCredential, error)
}

var _ Bucket = (*storage.Bucket)(nil)

// Func is the signature lambda.Start expects from the handlers.
type Func func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func respond(status int, body any) (events.APIGatewayProxyResponse, error) {
	data, err := json.MarshalIndent(body, "", model.ResponseIndent)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": model.ContentTypeJSON},
		Body:       string(data),
	}, nil
}

// debugRequested reports whether the listing debug flag is set to "1".
func debugRequested(req events.APIGatewayProxyRequest) bool {
	return req.QueryStringParameters[model.DebugQueryParam] == "1"
}

// debugPresent reports whether any debug parameter was sent, whatever its value.
func debugPresent(req events.APIGatewayProxyRequest) bool {
	_, ok := req.QueryStringParameters[model.DebugQueryParam]
	return ok
}

// backendFields adds the AWS error code to log lines when err carries one.
func backendFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields,
			zap.String("aws_error_code", apiErr.ErrorCode()),
			zap.String("aws_error_fault", apiErr.ErrorFault().String()),
		)
	}
	return fields
}
