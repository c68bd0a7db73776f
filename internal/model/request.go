package model

// UploadRequest is the upload-link input extracted from the query string.
type UploadRequest struct {
	RequestedKey string `json:"requested_key"`
}
