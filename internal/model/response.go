package model

// FileLink is one object in a listing response.
type FileLink struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	ExpirySeconds int    `json:"s3_presigned_url_expiry,omitempty"`
	HTTPMethod    string `json:"http_method,omitempty"`
}

// ListResponse is returned by both listing handlers.
type ListResponse struct {
	Files    []FileLink `json:"files"`
	Error    int        `json:"error"`
	ErrorMsg string     `json:"error_msg,omitempty"`
	Event    any        `json:"event,omitempty"`
}

// UploadHints tell clients how to use the presigned POST.
type UploadHints struct {
	HTTPMethod string   `json:"http_method"`
	Docs       []string `json:"docs"`
}

// UploadLinkResponse is returned by the upload-link handler.
type UploadLinkResponse struct {
	RequestedKey string            `json:"requested_key"`
	Error        int               `json:"error"`
	ErrorMsg     string            `json:"error_msg,omitempty"`
	Params       *UploadCredential `json:"s3_presigned_url_params,omitempty"`
	Hints        *UploadHints      `json:"hints,omitempty"`
	Event        any               `json:"event,omitempty"`
}
