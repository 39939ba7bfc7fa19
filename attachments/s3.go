package attachments

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/snap-point/activity-api/config"
)

// keyPrefix groups post images inside the bucket.
const keyPrefix = "uploads/posts/"

type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewR2Storage builds an S3 client against the configured R2 account or endpoint.
func NewR2Storage(cfg config.R2Config) *S3Storage {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.EndpointURL()),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region:       cfg.Region,
		UsePathStyle: cfg.Endpoint != "",
	})
	st := NewS3Storage(client, cfg.BucketName)
	st.publicURL = strings.TrimRight(cfg.PublicURL, "/")
	return st
}

func NewS3Storage(client *s3.Client, bucket string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket}
}

func (s *S3Storage) key(name string) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return keyPrefix + name, nil
}

// AttachmentURL is the public address of name, or "" when the bucket has no
// public URL configured.
func (s *S3Storage) AttachmentURL(name string) string {
	if s.publicURL == "" {
		return ""
	}
	key, err := s.key(name)
	if err != nil {
		return ""
	}
	return s.publicURL + "/" + key
}

func (s *S3Storage) Save(ctx context.Context, name string, data []byte, contentType string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) ReadAttachment(ctx context.Context, name string) ([]byte, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *S3Storage) Delete(ctx context.Context, name string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
