package model

import "regexp"

// Domain constants shared across handler, policy, and storage packages.
const (
	ContentTypeJSON = "application/json"

	UploadURLTTLSeconds     = 3600 // 1 hour
	PrefixListURLTTLSeconds = 3600 // 1 hour
	FlatListURLTTLSeconds   = 900  // 15 minutes
	PrefixListMaxKeys       = 20
	FlatListMaxKeys         = 200

	ExampleResourcePath    = "/example"
	ExampleKeyPrefix       = "example/"
	DebugQueryParam        = "debug"
	KeyQueryParam          = "key"
	ProtectedKeysSeparator = ","
	ResponseIndent         = "   "
	UploadHTTPMethod       = "POST"
	DownloadHTTPMethod     = "GET"
)

// KeyPattern is the set of object names accepted for upload.
var KeyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// UploadDocs are returned as hints next to a presigned POST.
var UploadDocs = []string{
	"https://docs.aws.amazon.com/AmazonS3/latest/API/sigv4-HTTPPOSTForms.html",
	"https://docs.aws.amazon.com/AmazonS3/latest/userguide/S3OutpostsPresignedUrlUploadObject.html",
}
