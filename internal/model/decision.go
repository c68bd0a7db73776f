package model

// Error messages returned by the upload gate.
const (
	MsgInvalidKey      = "Invalid or empty 'key' parameter"
	MsgInvalidChars    = "Forbidden key requested. Invalid chars."
	MsgProtectedKey    = "Forbidden key requested. Use another key for upload"
	MsgUnhandledServer = "Unhandled server side error"
)

// PolicyDecision is the outcome of evaluating an UploadRequest.
type PolicyDecision struct {
	StatusCode   int    `json:"status_code"`
	Allowed      bool   `json:"allowed"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// UploadCredential is a presigned POST for a single key.
type UploadCredential struct {
	Key           string            `json:"-"`
	ExpirySeconds int               `json:"-"`
	URL           string            `json:"url"`
	Fields        map[string]string `json:"fields"`
}
