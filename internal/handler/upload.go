package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/sh3r4rd/bucket_links/internal/model"
	"github.com/sh3r4rd/bucket_links/internal/policy"
)

// Uploader issues presigned POST links for keys accepted by the policy.
type Uploader struct {
	bucket    Bucket
	protected policy.ProtectedKeySet
	logger    *zap.Logger
}

// NewUploader creates an Uploader that refuses the keys in protected.
func NewUploader(bucket Bucket, protected policy.ProtectedKeySet, logger *zap.Logger) *Uploader {
	return &Uploader{bucket: bucket, protected: protected, logger: logger}
}

// Handle reads the key query parameter and answers with an upload link or
// the reason it was refused.
func (h *Uploader) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var (
		status int
		body   model.UploadLinkResponse
	)

	key, ok := req.QueryStringParameters[model.KeyQueryParam]
	if !ok {
		status = http.StatusBadRequest
		body = model.UploadLinkResponse{Error: 1, ErrorMsg: model.MsgInvalidKey}
	} else {
		status, body = h.UploadLink(ctx, model.UploadRequest{RequestedKey: key})
	}

	if debugPresent(req) {
		body.Event = req
	}
	return respond(status, body)
}

// UploadLink evaluates the request and, when allowed, mints the credential.
func (h *Uploader) UploadLink(ctx context.Context, req model.UploadRequest) (int, model.UploadLinkResponse) {
	decision := policy.Evaluate(req, h.protected)
	if !decision.Allowed {
		h.logger.Info("upload link refused",
			zap.String("key", req.RequestedKey),
			zap.Int("status", decision.StatusCode),
			zap.String("reason", decision.ErrorMessage),
		)
		return decision.StatusCode, model.UploadLinkResponse{
			RequestedKey: req.RequestedKey,
			Error:        1,
			ErrorMsg:     decision.ErrorMessage,
		}
	}

	cred, err := h.bucket.PresignPost(ctx, req.RequestedKey, model.UploadURLTTLSeconds*time.Second)
	if err != nil {
		h.logger.Error("presign upload failed", append(backendFields(err), zap.String("key", req.RequestedKey))...)
		return http.StatusInternalServerError, model.UploadLinkResponse{
			RequestedKey: req.RequestedKey,
			Error:        1,
			ErrorMsg:     model.MsgUnhandledServer,
		}
	}

	return decision.StatusCode, model.UploadLinkResponse{
		RequestedKey: req.RequestedKey,
		Params:       cred,
		Hints: &model.UploadHints{
			HTTPMethod: model.UploadHTTPMethod,
			Docs:       model.UploadDocs,
		},
	}
}
