package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/smithy-go"

	"github.com/sh3r4rd/bucket_links/internal/model"
	"github.com/sh3r4rd/bucket_links/internal/storage"
)

type fakeBucket struct {
	objects  []storage.Object
	listErr  error
	getErr   error
	postErr  error
	listed   []listCall
	presigns []string
	posts    []string
	ttls     []time.Duration
}

type listCall struct {
	prefix  string
	maxKeys int32
}

func (f *fakeBucket) List(_ context.Context, prefix string, maxKeys int32) ([]storage.Object, error) {
	f.listed = append(f.listed, listCall{prefix: prefix, maxKeys: maxKeys})
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.objects) == 0 {
		return nil, storage.ErrNoContents
	}
	return f.objects, nil
}

func (f *fakeBucket) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	f.presigns = append(f.presigns, key)
	f.ttls = append(f.ttls, ttl)
	return fmt.Sprintf("https://test-bucket.s3.amazonaws.com/%s?X-Amz-Expires=%d", key, int(ttl.Seconds())), nil
}

func (f *fakeBucket) PresignPost(_ context.Context, key string, ttl time.Duration) (*model.UploadCredential, error) {
	f.posts = append(f.posts, key)
	f.ttls = append(f.ttls, ttl)
	if f.postErr != nil {
		return nil, f.postErr
	}
	return &model.UploadCredential{
		Key:           key,
		ExpirySeconds: int(ttl.Seconds()),
		URL:           "https://test-bucket.s3.amazonaws.com/",
		Fields:        map[string]string{"key": key, "policy": "eyJ9"},
	}, nil
}

func objects(keys ...string) []storage.Object {
	out := make([]storage.Object, 0, len(keys))
	for _, k := range keys {
		out = append(out, storage.Object{Key: k})
	}
	return out
}

func proxyRequest(resourcePath string, query map[string]string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		Resource:              resourcePath,
		Path:                  resourcePath,
		HTTPMethod:            "GET",
		QueryStringParameters: query,
		RequestContext: events.APIGatewayProxyRequestContext{
			ResourcePath: resourcePath,
			RequestID:    "req-1",
		},
	}
}

func decode(body string, v any) error {
	return json.NewDecoder(strings.NewReader(body)).Decode(v)
}

var errAccessDenied = &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"}

