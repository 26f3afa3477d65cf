package cloudwriter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the slice of the S3 client the writer needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var errClosed = errors.New("cloudwriter: write after close")

type S3Writer struct {
	ctx        context.Context
	client     ObjectPutter
	bucket     string
	objectPath string
	buffer     bytes.Buffer
	closed     bool
}

type S3WriterFactory struct {
	ctx    context.Context
	client ObjectPutter
}

func NewS3WriterFactory(ctx context.Context, region string) (*S3WriterFactory, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return NewS3WriterFactoryWithClient(ctx, s3.NewFromConfig(cfg)), nil
}

// NewS3WriterFactoryWithClient uploads through client; uploads run under ctx.
func NewS3WriterFactoryWithClient(ctx context.Context, client ObjectPutter) *S3WriterFactory {
	return &S3WriterFactory{ctx: ctx, client: client}
}

func (f *S3WriterFactory) NewWriter(bucket, objectPath string) (CloudWriter, error) {
	if bucket == "" {
		return nil, errors.New("cloudwriter: bucket required")
	}
	return &S3Writer{
		ctx:        f.ctx,
		client:     f.client,
		bucket:     bucket,
		objectPath: objectPath,
	}, nil
}

func (w *S3Writer) Write(data []byte) (int, error) {
	if w.closed {
		return 0, errClosed
	}
	return w.buffer.Write(data)
}

// Close uploads the buffered bytes. A second Close is a no-op.
func (w *S3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(w.objectPath),
		Body:        bytes.NewReader(w.buffer.Bytes()),
		ContentType: aws.String(contentType(w.objectPath)),
	})
	if err != nil {
		return fmt.Errorf("unable to upload file to S3: %w", err)
	}
	return nil
}

func contentType(objectPath string) string {
	switch path.Ext(objectPath) {
	case ".json", ".jsonl":
		return "application/x-ndjson"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
