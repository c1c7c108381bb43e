package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/Turtyo/rayTracing3D/pkg/renderer"
)

// UploadTimeout bounds a single image upload
const UploadTimeout = 30 * time.Second

// Uploader is the part of the S3 client used to store images
type Uploader interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Options holds the connection settings for an S3-compatible store
type S3Options struct {
	AccessKey string
	SecretKey string
	Endpoint  string // empty for AWS itself
	Region    string
	ACL       string // e.g. "public-read", empty for the bucket default
}

// NewS3Client opens a session with static credentials and path-style
// addressing so that MinIO-like endpoints work too
func NewS3Client(opts S3Options) (*s3.S3, error) {
	cfg := &aws.Config{
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if opts.AccessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, "")
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// S3Sink encodes the image in memory and uploads it as Bucket/Key
type S3Sink struct {
	Client  Uploader
	Bucket  string
	Key     string
	Format  Format
	ACL     string
	Timeout time.Duration // defaults to UploadTimeout
}

// WriteImage implements renderer.Sink
func (s *S3Sink) WriteImage(pix []uint8, width, height int) error {
	img, err := ToImage(pix, width, height)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, s.Format); err != nil {
		return fmt.Errorf("error encoding %v: %w", s.Format, err)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = UploadTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	size := int64(buf.Len())
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(s.Key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(s.Format.ContentType()),
	}
	if s.ACL != "" {
		input.ACL = aws.String(s.ACL)
	}
	if _, err := s.Client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", s.Key, err)
	}

	log.Printf("Uploaded s3://%s/%s (%d bytes)", s.Bucket, s.Key, size)
	return nil
}

// ParseS3URL splits s3://bucket/path/to/key
func ParseS3URL(target string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(target, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 URL: %s", target)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 URL needs a bucket and a key: %s", target)
	}
	return bucket, key, nil
}

// NewSink returns an S3Sink for s3:// targets and a FileSink otherwise.
// The client is only used for S3 targets and may be nil for files.
func NewSink(target string, client Uploader, acl string) (renderer.Sink, error) {
	if !strings.HasPrefix(target, "s3://") {
		return NewFileSink(target)
	}

	bucket, key, err := ParseS3URL(target)
	if err != nil {
		return nil, err
	}
	format, err := FormatFromPath(key)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("no S3 client configured for %s", target)
	}
	return &S3Sink{Client: client, Bucket: bucket, Key: key, Format: format, ACL: acl}, nil
}
