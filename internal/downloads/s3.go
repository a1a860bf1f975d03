package downloads

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectAPI is the part of *s3.Client the sink needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Sink uploads each file under <prefix>/<uuid>/<filename> so repeated
// exports with the same name never overwrite each other.
type S3Sink struct {
	client ObjectAPI
	bucket string
	prefix string
	newID  func() string
}

func NewS3Sink(client ObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
		newID:  func() string { return uuid.NewString() },
	}
}

func (s *S3Sink) Deliver(ctx context.Context, filename, contentType string, data []byte) (*Object, error) {
	name := SafeFilename(filename)
	key := path.Join(s.prefix, s.newID(), name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf(`attachment; filename="%s"`, name)),
		Body:               bytes.NewReader(data),
	})
	if err != nil {
		return nil, fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}

	return &Object{
		Filename:    name,
		ContentType: contentType,
		Location:    fmt.Sprintf("s3://%s/%s", s.bucket, key),
		Size:        len(data),
	}, nil
}

func (s *S3Sink) Remove(ctx context.Context, obj *Object) error {
	key := strings.TrimPrefix(obj.Location, fmt.Sprintf("s3://%s/", s.bucket))
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
