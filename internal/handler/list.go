package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/sh3r4rd/bucket_links/internal/model"
	"github.com/sh3r4rd/bucket_links/internal/storage"
)

// PrefixLister serves the listing that picks its key prefix from the
// resource path and reports every failure as a 500.
type PrefixLister struct {
	bucket Bucket
	logger *zap.Logger
}

// NewPrefixLister creates a PrefixLister.
func NewPrefixLister(bucket Bucket, logger *zap.Logger) *PrefixLister {
	return &PrefixLister{bucket: bucket, logger: logger}
}

// Handle lists the prefix and returns a download link per object.
func (h *PrefixLister) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	prefix := PrefixForResource(req.RequestContext.ResourcePath)

	status := http.StatusOK
	body := model.ListResponse{Files: []model.FileLink{}}

	files, err := h.ListFiles(ctx, prefix)
	if err != nil {
		h.logger.Error("listing failed", append(backendFields(err), zap.String("prefix", prefix))...)
		status = http.StatusInternalServerError
		body.Error = 1
		body.ErrorMsg = "Error - " + err.Error()
	} else {
		body.Files = files
	}

	if debugRequested(req) {
		body.Event = req
	}
	return respond(status, body)
}

// ListFiles returns the download links for the objects directly under
// prefix. An empty listing is an error.
func (h *PrefixLister) ListFiles(ctx context.Context, prefix string) ([]model.FileLink, error) {
	objects, err := h.bucket.List(ctx, prefix, model.PrefixListMaxKeys)
	if err != nil {
		return nil, err
	}

	ttl := model.PrefixListURLTTLSeconds * time.Second
	files := make([]model.FileLink, 0, len(objects))
	for _, o := range objects {
		if !inPrefix(o.Key, prefix) {
			continue
		}
		url, err := h.bucket.PresignGet(ctx, o.Key, ttl)
		if err != nil {
			return nil, err
		}
		files = append(files, model.FileLink{Name: baseName(o.Key), URL: url})
	}
	return files, nil
}

// FlatLister serves the listing of the whole bucket with extra per-file
// fields. A failed or empty listing is answered with no files.
type FlatLister struct {
	bucket Bucket
	logger *zap.Logger
}

// NewFlatLister creates a FlatLister.
func NewFlatLister(bucket Bucket, logger *zap.Logger) *FlatLister {
	return &FlatLister{bucket: bucket, logger: logger}
}

// Handle lists the bucket root. Presign failures are returned as errors.
func (h *FlatLister) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.logger.Info("flat listing request", zap.Any("event", req))

	files, err := h.ListFiles(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	body := model.ListResponse{Files: files}
	if debugRequested(req) {
		body.Event = req
	}
	return respond(http.StatusOK, body)
}

// ListFiles returns a download link for every non-directory object.
func (h *FlatLister) ListFiles(ctx context.Context) ([]model.FileLink, error) {
	files := []model.FileLink{}

	objects, err := h.bucket.List(ctx, "", model.FlatListMaxKeys)
	if err != nil {
		if !errors.Is(err, storage.ErrNoContents) {
			h.logger.Warn("listing failed, returning no files", backendFields(err)...)
		}
		return files, nil
	}

	ttl := model.FlatListURLTTLSeconds * time.Second
	for _, o := range objects {
		if isDir(o.Key) {
			continue
		}
		url, err := h.bucket.PresignGet(ctx, o.Key, ttl)
		if err != nil {
			return nil, err
		}
		files = append(files, model.FileLink{
			Name:          baseName(o.Key),
			URL:           url,
			ExpirySeconds: model.FlatListURLTTLSeconds,
			HTTPMethod:    model.DownloadHTTPMethod,
		})
	}
	return files, nil
}

// PrefixForResource maps an API resource path to the key prefix it lists.
func PrefixForResource(resourcePath string) string {
	if resourcePath == model.ExampleResourcePath {
		return model.ExampleKeyPrefix
	}
	return ""
}

// inPrefix reports whether key is a file that belongs to a listing of
// prefix. The root listing only holds keys without a slash.
func inPrefix(key, prefix string) bool {
	switch {
	case isDir(key):
		return false
	case prefix == "":
		return !strings.Contains(key, "/")
	default:
		return strings.HasPrefix(key, prefix)
	}
}

func isDir(key string) bool {
	return strings.HasSuffix(key, "/")
}

func baseName(key string) string {
	return key[strings.LastIndex(key, "/")+1:]
}
