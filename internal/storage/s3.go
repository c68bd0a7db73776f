// Package storage wraps the S3 calls used by the handlers: listing a prefix
// and presigning GET and POST requests for single keys.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sh3r4rd/bucket_links/internal/model"
)

// ErrNoContents is returned by List when the bucket has nothing under the
// requested prefix.
var ErrNoContents = errors.New("no contents found")

// ListObjectsAPI is the subset of the S3 API used for listing.
type ListObjectsAPI interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// PresignAPI is the subset of s3.PresignClient used to mint links.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignPostObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignPostOptions)) (*s3.PresignedPostRequest, error)
}

var (
	_ ListObjectsAPI = (*s3.Client)(nil)
	_ PresignAPI     = (*s3.PresignClient)(nil)
)

// Object is a listed entry.
type Object struct {
	Key string
}

// Options configure NewS3Bucket. Zero values fall back to the default AWS
// credential chain and region resolution.
type Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Bucket issues list and presign calls against one S3 bucket.
type Bucket struct {
	name      string
	client    ListObjectsAPI
	presigner PresignAPI
}

// NewBucket creates a Bucket from already-built clients.
func NewBucket(name string, client ListObjectsAPI, presigner PresignAPI) *Bucket {
	return &Bucket{name: name, client: client, presigner: presigner}
}

// NewS3Bucket loads the AWS configuration and builds a Bucket for name.
func NewS3Bucket(ctx context.Context, name string, opts Options) (*Bucket, error) {
	cfg, err := LoadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewBucketFromConfig(name, cfg, opts.Endpoint), nil
}

// LoadConfig resolves the AWS configuration for opts. A static key pair,
// when both halves are set, replaces the default credential chain.
func LoadConfig(ctx context.Context, opts Options) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("storage: load aws config: %w", err)
	}
	return cfg, nil
}

// NewBucketFromConfig builds the S3 and presign clients from cfg. A
// non-empty endpoint switches to path-style addressing for S3-compatible
// stores.
func NewBucketFromConfig(name string, cfg aws.Config, endpoint string) *Bucket {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewBucket(name, client, s3.NewPresignClient(client))
}

// List returns at most maxKeys objects whose key begins with prefix.
func (b *Bucket) List(ctx context.Context, prefix string, maxKeys int32) ([]Object, error) {
	out, err := b.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(b.name),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(maxKeys),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list objects in %s/%s: %w", b.name, prefix, err)
	}
	if len(out.Contents) == 0 {
		return nil, ErrNoContents
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, o := range out.Contents {
		objects = append(objects, Object{Key: aws.ToString(o.Key)})
	}
	return objects, nil
}

// PresignGet returns a URL allowing a GET of key for ttl.
func (b *Bucket) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := b.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("storage: presign get %s/%s: %w", b.name, key, err)
	}
	return req.URL, nil
}

// PresignPost returns the URL and form fields for a browser-style POST
// upload of key, valid for ttl.
func (b *Bucket) PresignPost(ctx context.Context, key string, ttl time.Duration) (*model.UploadCredential, error) {
	req, err := b.presigner.PresignPostObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	}, func(o *s3.PresignPostOptions) {
		o.Expires = ttl
	})
	if err != nil {
		return nil, fmt.Errorf("storage: presign post %s/%s: %w", b.name, key, err)
	}
	return &model.UploadCredential{
		Key:           key,
		ExpirySeconds: int(ttl / time.Second),
		URL:           req.URL,
		Fields:        req.Values,
	}, nil
}
