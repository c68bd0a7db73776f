package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sh3r4rd/bucket_links/internal/handler"
	"github.com/sh3r4rd/bucket_links/internal/model"
	"github.com/sh3r4rd/bucket_links/internal/policy"
)

var protected = policy.ParseProtectedKeys("datafile0.csv,datafile1.csv,datafile0.md5")

func TestUploader_Handle(t *testing.T) {
	tests := []struct {
		name       string
		query      map[string]string
		wantStatus int
		wantKey    string
		wantMsg    string
		wantPosts  []string
	}{
		{
			name:       "no query string",
			query:      nil,
			wantStatus: http.StatusBadRequest,
			wantMsg:    model.MsgInvalidKey,
		},
		{
			name:       "missing key",
			query:      map[string]string{"other": "x"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    model.MsgInvalidKey,
		},
		{
			name:       "empty key",
			query:      map[string]string{"key": ""},
			wantStatus: http.StatusBadRequest,
			wantMsg:    model.MsgInvalidKey,
		},
		{
			name:       "invalid chars",
			query:      map[string]string{"key": "../etc/passwd"},
			wantStatus: http.StatusForbidden,
			wantKey:    "../etc/passwd",
			wantMsg:    model.MsgInvalidChars,
		},
		{
			name:       "protected",
			query:      map[string]string{"key": "datafile0.csv"},
			wantStatus: http.StatusForbidden,
			wantKey:    "datafile0.csv",
			wantMsg:    model.MsgProtectedKey,
		},
		{
			name:       "allowed",
			query:      map[string]string{"key": "report-2024.csv"},
			wantStatus: http.StatusOK,
			wantKey:    "report-2024.csv",
			wantPosts:  []string{"report-2024.csv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket := &fakeBucket{}
			h := handler.NewUploader(bucket, protected, zap.NewNop())

			resp, err := h.Handle(context.Background(), proxyRequest("/upload-link", tt.query))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])

			var body model.UploadLinkResponse
			require.NoError(t, decode(resp.Body, &body))
			assert.Equal(t, tt.wantKey, body.RequestedKey)
			assert.Equal(t, tt.wantMsg, body.ErrorMsg)
			assert.Equal(t, tt.wantPosts, bucket.posts)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, 0, body.Error)
				require.NotNil(t, body.Params)
				assert.Equal(t, tt.wantKey, body.Params.Fields["key"])
				require.NotNil(t, body.Hints)
				assert.Equal(t, "POST", body.Hints.HTTPMethod)
				assert.Equal(t, model.UploadDocs, body.Hints.Docs)
				assert.Equal(t, []time.Duration{time.Hour}, bucket.ttls)
			} else {
				assert.Equal(t, 1, body.Error)
				assert.Nil(t, body.Params)
				assert.Nil(t, body.Hints)
			}
		})
	}
}

func TestUploader_HandleBackendFailure(t *testing.T) {
	bucket := &fakeBucket{postErr: errAccessDenied}
	h := handler.NewUploader(bucket, protected, zap.NewNop())

	resp, err := h.Handle(context.Background(), proxyRequest("/upload-link", map[string]string{"key": "report.csv"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body model.UploadLinkResponse
	require.NoError(t, decode(resp.Body, &body))
	assert.Equal(t, "report.csv", body.RequestedKey)
	assert.Equal(t, 1, body.Error)
	assert.Equal(t, model.MsgUnhandledServer, body.ErrorMsg)
	assert.NotContains(t, resp.Body, "AccessDenied")
}

func TestUploader_HandleDebug(t *testing.T) {
	tests := []struct {
		name  string
		query map[string]string
	}{
		{"debug=1", map[string]string{"key": "a.csv", "debug": "1"}},
		{"debug=0", map[string]string{"key": "a.csv", "debug": "0"}},
		{"debug empty", map[string]string{"debug": ""}},
		{"denied", map[string]string{"key": "datafile0.csv", "debug": "yes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewUploader(&fakeBucket{}, protected, zap.NewNop())

			resp, err := h.Handle(context.Background(), proxyRequest("/upload-link", tt.query))
			require.NoError(t, err)

			var body map[string]any
			require.NoError(t, decode(resp.Body, &body))
			event, ok := body["event"].(map[string]any)
			require.True(t, ok, "event should be echoed")
			assert.Equal(t, "/upload-link", event["resource"])
		})
	}

	t.Run("no debug key", func(t *testing.T) {
		h := handler.NewUploader(&fakeBucket{}, protected, zap.NewNop())

		resp, err := h.Handle(context.Background(), proxyRequest("/upload-link", map[string]string{"key": "a.csv"}))
		require.NoError(t, err)
		assert.NotContains(t, resp.Body, `"event"`)
	})
}

func TestUploader_UploadLinkIsRepeatable(t *testing.T) {
	h := handler.NewUploader(&fakeBucket{}, protected, zap.NewNop())
	req := model.UploadRequest{RequestedKey: "datafile1.csv"}

	s1, b1 := h.UploadLink(context.Background(), req)
	s2, b2 := h.UploadLink(context.Background(), req)
	assert.Equal(t, s1, s2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, http.StatusForbidden, s1)
}
